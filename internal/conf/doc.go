// Package conf implements the configuration bootstrap pipeline: it turns a
// root configuration source containing nested `#include<path>` directives
// and `$(var)` variable references into a single resolved text artifact.
//
// The pipeline runs in two phases. The Resolver splices included files into
// the root source, depth-first, confined to a root directory. The Expander
// then substitutes variable references against a layered Scope. Both phases
// are bounded by the same fixed recursion depth; there is no other
// backpressure mechanism and no automatic retry. The first failure in
// either phase aborts assembly entirely so that a partially-resolved
// configuration is never observable.
//
// Resolver and Expander are pure and reentrant: independent assemblies may
// run concurrently without coordination.
package conf
