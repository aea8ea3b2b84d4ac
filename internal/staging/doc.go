// Package staging writes uploaded media to durable temporary files and
// guarantees their removal.
//
// A staged file is exclusively owned by the request that created it. Remove
// is safe to call from any number of paths; the underlying delete happens
// exactly once. CleanStale handles the leftovers of crashed processes.
package staging
