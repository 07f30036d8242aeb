// Package inmemorystore provides a thread-safe, in-memory implementation
// of the state.Store interface. It is suitable for a single run where entry
// state does not need to outlive the process.
package inmemorystore
