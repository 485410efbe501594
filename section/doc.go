// Package section maps binding priorities onto platform linker sections.
//
// Every supported platform provides ordered constructor and destructor
// function-pointer tables embedded in specific, named sections of the
// compiled binary. The scheduler is a pure mapping from (family, phase,
// priority) to the section name the loader will honor:
//
//	Name(FamilyUnix, PhaseConstruct, 10)   // ".init_array.00010"
//	Name(FamilyWindows, PhaseDestruct, 10) // ".CRT$XPU00010"
//	Name(FamilyApple, PhaseConstruct, 10)  // "__DATA,__mod_init_func"
//
// Encoding the priority directly into the section name, zero-padded to a
// fixed width, lets the existing loader machinery of each platform perform
// the ordering. No scheduler runs at execution time; all scheduling is
// link-time placement.
//
// The unsupported family never yields a name. It is rejected at build time
// because silently skipping eager initialization would produce reads of an
// uninitialized cell.
package section
