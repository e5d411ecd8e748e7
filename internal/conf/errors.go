package conf

import (
	"fmt"
	"strings"
)

// MaxDepth bounds both include nesting and variable re-expansion. A true
// include cycle is not detected by identity; it simply runs until this
// bound trips, and the reported chain makes the cycle visible.
const MaxDepth = 10

func formatChain(chain []string) string {
	return strings.Join(chain, " -> ")
}

// PathEscapeError reports an include target that canonicalizes outside the
// permitted root. This is a hard boundary: the target file is never read.
type PathEscapeError struct {
	Target string
	Root   string
	Chain  []string
}

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("include target %q escapes root %q (chain: %s)", e.Target, e.Root, formatChain(e.Chain))
}

// IncludeDepthError reports an include chain that exceeded MaxDepth.
type IncludeDepthError struct {
	Limit int
	Chain []string
}

func (e *IncludeDepthError) Error() string {
	return fmt.Sprintf("include nesting exceeds depth %d (chain: %s)", e.Limit, formatChain(e.Chain))
}

// VariableDepthError reports a variable reference chain that still
// contained unresolved `$(...)` syntax at the depth limit.
type VariableDepthError struct {
	Limit int
	Chain []string
}

func (e *VariableDepthError) Error() string {
	return fmt.Sprintf("variable expansion exceeds depth %d (chain: %s)", e.Limit, formatChain(e.Chain))
}

// UnresolvedVariableError reports a referenced name with no binding in any
// scope level and no environment fallback.
type UnresolvedVariableError struct {
	Name  string
	Chain []string
}

func (e *UnresolvedVariableError) Error() string {
	if len(e.Chain) > 1 {
		return fmt.Sprintf("variable %q is not defined in any scope (chain: %s)", e.Name, formatChain(e.Chain))
	}
	return fmt.Sprintf("variable %q is not defined in any scope", e.Name)
}
