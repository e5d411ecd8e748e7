package conf

import (
	"context"
	"fmt"

	"github.com/skyrig/chassis/internal/ctxlog"
	"github.com/skyrig/chassis/internal/fsutil"
)

// ResolvedConfig is the final text artifact after all includes and
// variables are resolved. It is immutable once produced; downstream code
// may parse Text into a structured tree with a grammar-specific reader.
type ResolvedConfig struct {
	Text     string
	RootPath string
	Entry    string
}

// Assembler drives the Resolver and then the Expander to produce one
// ResolvedConfig from a root source. The first error in either phase
// aborts assembly; partial results are discarded.
type Assembler struct {
	resolver *Resolver
	expander *Expander
}

// NewAssembler creates an Assembler with default depth bounds.
func NewAssembler() *Assembler {
	return &Assembler{resolver: NewResolver(), expander: NewExpander()}
}

// AssembleFile assembles the configuration rooted at the entry file,
// which must itself resolve within rootPath. The scope seeds variable
// expansion; a nil scope means no external variables.
func (a *Assembler) AssembleFile(ctx context.Context, rootPath, entry string, scope *Scope) (*ResolvedConfig, error) {
	path, err := fsutil.ResolveWithin(rootPath, entry)
	if err != nil {
		return nil, &PathEscapeError{Target: entry, Root: rootPath, Chain: []string{entry}}
	}
	text, err := fsutil.ReadTextFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entry %q: %w", entry, err)
	}
	return a.assemble(ctx, rootPath, RawSource{Name: entry, Text: text}, scope)
}

// AssembleText assembles configuration from an in-memory source. Include
// directives inside the text are still resolved against rootPath.
func (a *Assembler) AssembleText(ctx context.Context, rootPath, name, text string, scope *Scope) (*ResolvedConfig, error) {
	return a.assemble(ctx, rootPath, RawSource{Name: name, Text: text}, scope)
}

func (a *Assembler) assemble(ctx context.Context, rootPath string, source RawSource, scope *Scope) (*ResolvedConfig, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assembling configuration.", "root", rootPath, "entry", source.Name)

	// Includes first, so that included files carry variable references
	// resolved in one pass over the full text.
	included, err := a.resolver.Resolve(source, rootPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Include resolution complete.", "entry", source.Name, "bytes", len(included))

	if scope == nil {
		scope = NewScope(nil)
	}
	expanded, err := a.expander.Expand(included, scope)
	if err != nil {
		return nil, err
	}
	logger.Debug("Variable expansion complete.", "entry", source.Name, "bytes", len(expanded))

	return &ResolvedConfig{Text: expanded, RootPath: rootPath, Entry: source.Name}, nil
}
