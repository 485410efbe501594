// Package manifest loads binding declarations from HCL files.
//
// A manifest lists the eager globals of a program together with any
// external value types they mention:
//
//	type "Device" {
//	    size         = 24
//	    align        = 8
//	    capabilities = ["share", "fixed"]
//	    teardown     = "device_close"
//	}
//
//	binding "ROUTE_TABLE" {
//	    type     = "vec<u32>"
//	    priority = 10
//	    public   = true
//	    init     = "route_table_build()"
//	}
//
// Attribute values are HCL expressions evaluated against a small set of
// scheduling constants (max_priority, default_priority), so a binding may
// declare "priority = max_priority - 1".
//
// Load and Parse resolve type expressions against the declared extern
// types and return validated binding descriptors ready for planning.
package manifest
