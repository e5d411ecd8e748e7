// Package container provides a keyed registry of service factories and
// instances with singleton/transient lifecycle resolution.
//
// The container is the composition boundary of the process: it is
// populated once during application startup and consulted at the entry
// point. Business code should receive its dependencies as explicit
// constructor parameters rather than reaching into the container.
//
// Re-registering an existing key replaces the entry (last-write-wins);
// Register reports the replacement by returning false.
package container
