// Package cell provides the storage-cell lifecycle behind eager globals.
//
// Each binding owns exactly one cell with three lifecycle states:
//
//	Uninitialized --[construct, by loader, at most once]--> Initialized
//	Initialized   --[destruct, by loader, at most once]--> Destroyed
//
// Reads are valid only in the Initialized state. The Static facade reads
// without any state check; the construct phase having completed before the
// entry point is what makes that safe, not a runtime guard. The State
// accessor exists for deterministic lifecycle simulation in tests, never
// for generated read paths.
package cell
