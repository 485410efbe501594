// Package eagerlink provides eager, pre-entry-point initialization of
// process-wide globals whose construction cannot happen at compile time,
// without the per-access cost of a lazily-checked global.
//
// A binding declares a named global of a fixed-size type together with an
// initializer. The toolchain schedules that initializer into the platform's
// native constructor table so it runs exactly once before main, and a
// matching teardown into the destructor table so it runs exactly once after
// main returns normally. Reads through the generated facade carry no branch,
// no lock, and no "is it initialized yet" check.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	eagerlink/
//	├── binding/         Binding descriptors and the value type model
//	├── capability/      Build-time capability gate (share + fixed layout)
//	├── section/         Platform section scheduler (family, phase, priority)
//	├── gen/             Storage and registration code generator
//	├── cell/            Storage cell lifecycle and the access facade
//	├── loader/          Deterministic loader image simulation for both phases
//	├── manifest/        HCL declaration surface
//	├── errors/          Structured error types for debugging
//	└── cmd/eagerlink/   CLI driver and interactive layout browser
//
// # Quick Start
//
// Plan and generate artifacts for a manifest:
//
//	ds, err := manifest.Load("bindings.hcl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := gen.Generate(ds, gen.Target{Family: section.FamilyUnix})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("bindings_init.c", out.Source, 0o644)
//
// Simulate the two lifecycle phases deterministically in tests:
//
//	img := loader.NewImage(section.FamilyUnix)
//	var c cell.Cell[RouteTable]
//	table, err := loader.Bind(img, out.Modules[0], &c, buildTable, nil)
//	code, err := img.Boot(func() int { /* entry point */ return 0 })
//
// # Scheduling Model
//
// The system never runs a scheduler at execution time. Priority is encoded
// into the section name (zero-padded, width 5) so the platform's own
// lexical section ordering performs the scheduling at link time:
//
//	family   construct                 destruct
//	windows  .CRT$XCU00010             .CRT$XPU00010
//	apple    __DATA,__mod_init_func    __DATA,__mod_term_func
//	unix     .init_array.00010         .fini_array.00010
//
// On the Apple family no ordering control exists at all; all bindings run
// in loader-determined order and priority is ignored for that phase.
//
// # Usage Contract
//
// An initializer must not reference another binding produced by this
// system, must not reference the cell it is itself initializing, and must
// not start threads. Relative construction order across bindings is only
// controlled by priority, and nothing else about the runtime environment
// is live during the construct phase. These are documented preconditions,
// not checked at runtime.
package eagerlink
