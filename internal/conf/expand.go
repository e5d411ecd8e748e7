package conf

import "strings"

const (
	varStart  = "$("
	varEnd    = ")"
	varEscape = "$$"

	// envModifier marks a reference resolved from the process
	// environment instead of the scope, e.g. `$(~HOME)`. Adding the
	// required marker, `$(~!HOME)`, makes a missing variable an error
	// regardless of the scope policy.
	envModifier      = "~"
	requiredModifier = "!"
)

// Expander substitutes `$(name)` references against a Scope. It keeps no
// state between calls and is safe for concurrent use.
type Expander struct {
	maxDepth int
}

// NewExpander creates an Expander bounded by MaxDepth.
func NewExpander() *Expander {
	return &Expander{maxDepth: MaxDepth}
}

// Expand scans text left-to-right and substitutes every variable
// reference. Substituted values are themselves re-scanned, so chained
// indirection ($(a) -> $(b) -> literal) resolves in one call; the re-scan
// depth is bounded by MaxDepth.
//
// A leading `$$` marks the remainder of the text verbatim: the marker is
// consumed and nothing after it is expanded. An inline `$$(` emits a
// literal `$(` without triggering expansion.
func (e *Expander) Expand(text string, scope *Scope) (string, error) {
	return e.expand(text, scope, 0, nil)
}

func (e *Expander) expand(text string, scope *Scope, depth int, chain []string) (string, error) {
	if !strings.Contains(text, varStart) && !strings.Contains(text, varEscape) {
		return text, nil
	}

	// Leading escape: consume the marker, keep the rest untouched.
	if strings.HasPrefix(text, varEscape) && !strings.HasPrefix(text, varEscape+varStart[1:]) {
		return text[len(varEscape):], nil
	}

	var sb strings.Builder
	rest := text
	for len(rest) > 0 {
		if strings.HasPrefix(rest, varEscape+varStart[1:]) {
			sb.WriteString(varStart)
			rest = rest[len(varEscape)+len(varStart)-1:]
			continue
		}
		idx := strings.Index(rest, varStart)
		if idx < 0 {
			sb.WriteString(rest)
			break
		}
		if idx > 0 && rest[idx-1] == '$' {
			// Inline escape `$$(`: emit text up to it, then a literal `$(`.
			sb.WriteString(rest[:idx-1])
			sb.WriteString(varStart)
			rest = rest[idx+len(varStart):]
			continue
		}
		end := strings.Index(rest[idx+len(varStart):], varEnd)
		if end < 0 {
			// No closing delimiter: not a reference, emit as literal text.
			sb.WriteString(rest)
			break
		}

		sb.WriteString(rest[:idx])
		name := strings.TrimSpace(rest[idx+len(varStart) : idx+len(varStart)+end])
		rest = rest[idx+len(varStart)+end+len(varEnd):]

		childChain := append(append([]string{}, chain...), name)
		// A reference still unresolved at the depth limit fails rather
		// than looping forever.
		if depth >= e.maxDepth {
			return "", &VariableDepthError{Limit: e.maxDepth, Chain: childChain}
		}
		value, err := e.resolve(name, scope, childChain)
		if err != nil {
			return "", err
		}

		// Chained indirection: the substituted value is re-scanned one
		// depth level down.
		expanded, err := e.expand(value, scope, depth+1, childChain)
		if err != nil {
			return "", err
		}
		sb.WriteString(expanded)
	}
	return sb.String(), nil
}

func (e *Expander) resolve(name string, scope *Scope, chain []string) (string, error) {
	if name == "" {
		return "", nil
	}

	if strings.HasPrefix(name, envModifier) {
		envName := name[len(envModifier):]
		required := strings.HasPrefix(envName, requiredModifier)
		if required {
			envName = envName[len(requiredModifier):]
		}
		if value, ok := scope.Env(envName); ok {
			return value, nil
		}
		if required || scope.Policy() == FailOnMissing {
			return "", &UnresolvedVariableError{Name: name, Chain: chain}
		}
		return "", nil
	}

	if value, ok := scope.Lookup(name); ok {
		return value, nil
	}
	if scope.Policy() == EmptyOnMissing {
		return "", nil
	}
	return "", &UnresolvedVariableError{Name: name, Chain: chain}
}
