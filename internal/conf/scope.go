package conf

import "os"

// MissingPolicy controls what happens when a referenced variable has no
// binding in any scope level.
type MissingPolicy int

const (
	// FailOnMissing makes an unresolved reference an error. This is the
	// default; configuration should not silently degrade to empty strings.
	FailOnMissing MissingPolicy = iota

	// EmptyOnMissing substitutes an empty string for unresolved
	// references. Required environment references (`$(~!NAME)`) still
	// fail under this policy.
	EmptyOnMissing
)

// Scope is an ordered chain of name-to-value mappings, searched
// innermost-first. Lookups are pure; the same scope always resolves a
// name to the same value.
type Scope struct {
	layers    []map[string]string // index 0 is innermost
	policy    MissingPolicy
	lookupEnv func(string) (string, bool)
}

// NewScope creates a root scope over one mapping, with the FailOnMissing
// policy and process-environment fallback for `~`-prefixed references.
// A nil mapping yields an empty root scope.
func NewScope(vars map[string]string) *Scope {
	s := &Scope{policy: FailOnMissing, lookupEnv: os.LookupEnv}
	if vars != nil {
		s.layers = []map[string]string{vars}
	}
	return s
}

// WithPolicy returns a copy of the scope with the given missing-name
// policy.
func (s *Scope) WithPolicy(policy MissingPolicy) *Scope {
	out := *s
	out.policy = policy
	return &out
}

// WithEnvLookup returns a copy of the scope that resolves environment
// references through the supplied function instead of the process
// environment. Used by tests.
func (s *Scope) WithEnvLookup(lookup func(string) (string, bool)) *Scope {
	out := *s
	out.lookupEnv = lookup
	return &out
}

// Push returns a child scope with vars layered as the new innermost
// level. The receiver is not modified.
func (s *Scope) Push(vars map[string]string) *Scope {
	out := *s
	out.layers = make([]map[string]string, 0, len(s.layers)+1)
	out.layers = append(out.layers, vars)
	out.layers = append(out.layers, s.layers...)
	return &out
}

// Lookup searches the scope chain local-to-outer and returns the first
// match.
func (s *Scope) Lookup(name string) (string, bool) {
	for _, layer := range s.layers {
		if v, ok := layer[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Env resolves a name from the environment layer.
func (s *Scope) Env(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return s.lookupEnv(name)
}

// Policy returns the scope's missing-name policy.
func (s *Scope) Policy() MissingPolicy {
	return s.policy
}
