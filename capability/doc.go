// Package capability gates code generation on the two type-level
// requirements for safe eager globals: cross-thread sharing and fixed
// layout.
//
// The whole design depends on lock-free concurrent reads after
// initialization, so a type that cannot be shared without synchronization,
// or whose storage size is unknown at build time, must be rejected before
// any binary is produced. Check has no side effects beyond the pass/fail
// signal.
package capability
