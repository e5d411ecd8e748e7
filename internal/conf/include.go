package conf

import (
	"fmt"
	"strings"

	"github.com/skyrig/chassis/internal/fsutil"
)

const (
	includeStart = "#include<"
	includeEnd   = ">"
)

// RawSource is an identifier (path or logical name) plus UTF-8 text
// content, produced by reading a file or from an in-memory string.
type RawSource struct {
	Name string
	Text string
}

// Resolver expands `#include<path>` directives by splicing in the
// referenced files, recursively, confined to a root directory. It keeps
// no state between calls and is safe for concurrent use.
type Resolver struct {
	maxDepth int
}

// NewResolver creates a Resolver bounded by MaxDepth.
func NewResolver() *Resolver {
	return &Resolver{maxDepth: MaxDepth}
}

// Resolve expands every include directive in the source against rootPath.
// The root source sits at depth 0; each include increments the depth for
// its subtree. The first failing directive aborts the whole resolution.
func (r *Resolver) Resolve(source RawSource, rootPath string) (string, error) {
	return r.resolve(source.Text, rootPath, 0, []string{source.Name})
}

func (r *Resolver) resolve(text, rootPath string, depth int, chain []string) (string, error) {
	var sb strings.Builder
	rest := text
	for {
		idx := strings.Index(rest, includeStart)
		if idx < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		end := strings.Index(rest[idx+len(includeStart):], includeEnd)
		if end < 0 {
			// No closing delimiter: not a directive, emit as literal text.
			sb.WriteString(rest)
			return sb.String(), nil
		}

		sb.WriteString(rest[:idx])
		target := rest[idx+len(includeStart) : idx+len(includeStart)+end]
		rest = rest[idx+len(includeStart)+end+len(includeEnd):]

		childChain := append(append([]string{}, chain...), target)
		included, err := r.include(target, rootPath, depth+1, childChain)
		if err != nil {
			return "", err
		}
		sb.WriteString(included)
	}
}

func (r *Resolver) include(target, rootPath string, depth int, chain []string) (string, error) {
	if depth > r.maxDepth {
		return "", &IncludeDepthError{Limit: r.maxDepth, Chain: chain}
	}

	// The confinement check runs before any file access.
	path, err := fsutil.ResolveWithin(rootPath, target)
	if err != nil {
		return "", &PathEscapeError{Target: target, Root: rootPath, Chain: chain}
	}

	text, err := fsutil.ReadTextFile(path)
	if err != nil {
		return "", fmt.Errorf("reading include %q (chain: %s): %w", target, formatChain(chain), err)
	}

	return r.resolve(text, rootPath, depth, chain)
}
