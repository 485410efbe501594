// Package gen plans and renders the per-binding generated modules: an
// uninitialized storage cell sized for the value type, a constructor
// procedure writing the initializer's result into the cell exactly once, a
// destructor procedure running the value's teardown exactly once, and the
// two function-pointer registration entries placed into the sections the
// scheduler names.
//
// Planning is the build-time pipeline for one binding:
//
//	m, err := gen.Plan(descriptor, gen.Target{Family: section.FamilyUnix})
//
// which runs the capability gate, schedules both phases, and fixes the
// generated symbol names. Generate widens planning to a whole manifest and
// renders the C translation unit plus the facade header for public
// bindings. Everything is additive to the generated binary layout; no
// runtime state exists before the constructor procedures execute.
//
// If an initializer itself fails during the construct phase, behavior
// propagates to whatever the platform loader does with a failing pre-entry
// constructor, typically process abort. There is no recovery path, since
// no well-defined half-initialized state exists to fall back to.
package gen
