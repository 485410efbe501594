// Package loader simulates the platform loader's two lifecycle phases
// deterministically, in isolation from the surrounding program.
//
// On a real target the loader walks the constructor-table sections before
// transferring control to the entry point and the destructor-table
// sections after it returns. Nothing about that is observable from inside
// a single Go test process, so this package models it: an Image collects
// registration entries under their scheduled section names and Boot
// replays the whole lifecycle:
//
//	img := loader.NewImage(section.FamilyUnix)
//	routes, _ := loader.Bind(img, mod, &routesCell,
//	    func() []uint32 { return buildRoutes() }, nil)
//	code, err := img.Boot(func() int {
//	    return len(*routes.Get()) // facade read, construct phase already done
//	})
//
// Ordering follows the platforms being modeled: constructors in ascending
// lexical section order, destructors in descending order (reverse priority
// relative to construction). Bindings with equal priority run in an
// unspecified relative order; the simulation happens to use registration
// order, which is not a guarantee.
//
// No suspension, cancellation or blocking exists in either phase; both are
// synchronous run-to-completion sequences. A failing constructor is a
// fatal startup fault and the entry point never runs.
package loader
