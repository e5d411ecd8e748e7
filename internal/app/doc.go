// Package app provides the process-wide application context: one
// resolved configuration, one dependency container, and identity
// metadata (application id, instance tag, environment name) bound
// together behind a single-initialization contract.
//
// The context is created at most once per process via Init and reached
// afterwards via Current. Prefer passing the *App (or the specific
// dependency) explicitly; Current exists for callers that cannot
// practically thread the context through, such as a top-level bootstrap.
// A failed initialization is terminal: Current keeps reporting absence
// and Init does not retry.
package app
