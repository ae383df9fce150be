// Package engine provides the Calculator facade coordinating the operation
// registry, the command execution path, the undo/redo history and the
// notification hub.
//
// The atomicity boundary is one request: a Calculation either is fully
// computed, validated and recorded, or not created at all. When a subscriber
// fails after the record is committed, Perform returns both the Calculation
// and an event.ObserverError so the caller can report a degraded-but-
// completed operation.
package engine
