// Package fsutil provides file system utility functions, including the
// confinement check used to keep resolved paths inside a configured root.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ResolveWithin joins target onto root, canonicalizes the result, and
// verifies it is still contained within root. It returns the canonical
// absolute path, or an error when the target escapes the root. The
// target file is never touched; this is a purely lexical check.
func ResolveWithin(root, target string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("fsutil: cannot canonicalize root %q: %w", root, err)
	}
	absRoot = filepath.Clean(absRoot)

	candidate := filepath.Clean(filepath.Join(absRoot, target))
	if candidate != absRoot && !strings.HasPrefix(candidate, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("fsutil: target %q resolves outside of root %q", target, root)
	}
	return candidate, nil
}

// ReadTextFile reads a UTF-8 text file and returns its content as a string.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
