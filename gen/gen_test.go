package gen

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/errors"
	"github.com/eagerlink/eagerlink/section"
)

func desc(t *testing.T, name, typeExpr, init string, prio uint16) binding.Descriptor {
	t.Helper()
	ty, err := binding.ParseType(typeExpr, testExterns())
	if err != nil {
		t.Fatalf("ParseType(%q) error = %v", typeExpr, err)
	}
	return binding.Descriptor{Name: name, Type: ty, Init: init, Priority: prio}
}

func testExterns() map[string]*binding.Type {
	return map[string]*binding.Type{
		"Device": {
			Kind: binding.KindExtern,
			Name: "Device",
			Extern: &binding.ExternInfo{
				Size: 24, Align: 8, SizeKnown: true, Share: true, Teardown: "device_close",
			},
		},
		"Unshared": {
			Kind:   binding.KindExtern,
			Name:   "Unshared",
			Extern: &binding.ExternInfo{Size: 8, Align: 8, SizeKnown: true},
		},
	}
}

func TestPlan(t *testing.T) {
	d := desc(t, "ROUTE_TABLE", "vec<u32>", "route_table_build()", 10)
	m, err := Plan(d, Target{Family: section.FamilyUnix})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if m.CellSym != "__eagerlink_ROUTE_TABLE_cell" {
		t.Errorf("CellSym = %q", m.CellSym)
	}
	if m.Ctor.Section != ".init_array.00010" {
		t.Errorf("Ctor.Section = %q, want .init_array.00010", m.Ctor.Section)
	}
	if m.Dtor.Section != ".fini_array.00010" {
		t.Errorf("Dtor.Section = %q, want .fini_array.00010", m.Dtor.Section)
	}
	if m.Ctor.Proc == m.Dtor.Proc {
		t.Error("ctor and dtor share a symbol")
	}
	if m.Size != 24 || m.Align != 8 {
		t.Errorf("Size/Align = %d/%d, want 24/8", m.Size, m.Align)
	}
}

func TestPlan_CapabilityGate(t *testing.T) {
	d := desc(t, "DEV", "Unshared", "make_unshared()", 0)
	_, err := Plan(d, Target{Family: section.FamilyUnix})
	if err == nil {
		t.Fatal("Plan() should fail the capability gate")
	}
	target := &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindCapability}
	if !goerrors.Is(err, target) {
		t.Errorf("error = %v, want capability error", err)
	}
}

func TestPlan_UnsupportedFamily(t *testing.T) {
	d := desc(t, "A", "u32", "1", 0)
	_, err := Plan(d, Target{Family: section.FamilyUnsupported})
	if err == nil {
		t.Fatal("Plan() should reject the unsupported family")
	}
	target := &errors.Error{Phase: errors.PhaseSchedule, Kind: errors.KindUnsupportedPlatform}
	if !goerrors.Is(err, target) {
		t.Errorf("error = %v, want unsupported_platform", err)
	}
}

func TestGenerate_Unix(t *testing.T) {
	ds := []binding.Descriptor{
		desc(t, "LOOKUP", "array<u32, 256>", "{ [0] = 7 }", 10),
		desc(t, "BANNER", "str", "eagerlink_str_from(\"hi\")", 20),
	}
	out, err := Generate(ds, Target{Family: section.FamilyUnix})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	src := string(out.Source)
	for _, want := range []string{
		"static __eagerlink_LOOKUP_box __eagerlink_LOOKUP_cell;",
		"static void __eagerlink_LOOKUP_ctor(void) {",
		"static void __eagerlink_LOOKUP_dtor(void) {",
		`__attribute__((used, section(".init_array.00010")))`,
		`__attribute__((used, section(".fini_array.00010")))`,
		`__attribute__((used, section(".init_array.00020")))`,
		"static void (*__eagerlink_LOOKUP_ctor_entry)(void) = __eagerlink_LOOKUP_ctor;",
		"typedef uint32_t __eagerlink_LOOKUP_t0[256];",
		// str owns heap contents, its dtor frees them
		"free(__eagerlink_BANNER_cell.value.ptr);",
		"EAGERLINK_VEC_DEFINED",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source missing %q\n%s", want, src)
		}
	}

	if len(out.Header) != 0 {
		t.Errorf("no public bindings, header should be empty, got %d bytes", len(out.Header))
	}

	// exactly one registration entry per phase per binding
	if n := strings.Count(src, "__eagerlink_LOOKUP_ctor_entry"); n != 1 {
		t.Errorf("LOOKUP ctor entry count = %d, want 1", n)
	}
	if n := strings.Count(src, "__eagerlink_LOOKUP_dtor_entry"); n != 1 {
		t.Errorf("LOOKUP dtor entry count = %d, want 1", n)
	}
}

func TestGenerate_Windows(t *testing.T) {
	ds := []binding.Descriptor{
		desc(t, "CONFIG", "struct{retries: u32, delay_ms: u64}", "{ .retries = 3, .delay_ms = 250 }", 42),
	}
	out, err := Generate(ds, Target{Family: section.FamilyWindows})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	src := string(out.Source)
	for _, want := range []string{
		`#pragma section(".CRT$XCU00042", read)`,
		`__declspec(allocate(".CRT$XCU00042"))`,
		`#pragma section(".CRT$XPU00042", read)`,
		"uint32_t retries;",
		"uint64_t delay_ms;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source missing %q\n%s", want, src)
		}
	}
}

func TestGenerate_Apple(t *testing.T) {
	ds := []binding.Descriptor{
		desc(t, "TBL", "u64", "compute()", 7),
	}
	out, err := Generate(ds, Target{Family: section.FamilyApple})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	src := string(out.Source)
	if !strings.Contains(src, `section("__DATA,__mod_init_func")`) {
		t.Errorf("source missing apple init section\n%s", src)
	}
	if !strings.Contains(src, `section("__DATA,__mod_term_func")`) {
		t.Errorf("source missing apple term section\n%s", src)
	}
}

func TestGenerate_PublicHeader(t *testing.T) {
	d := desc(t, "ROUTES", "vec<u32>", "route_table_build()", 10)
	d.Visibility = binding.Public

	out, err := Generate([]binding.Descriptor{d}, Target{Family: section.FamilyUnix})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	hdr := string(out.Header)
	for _, want := range []string{
		"#ifndef EAGERLINK_BINDINGS_H",
		"EAGERLINK_VEC_DEFINED",
		"extern __eagerlink_ROUTES_box __eagerlink_ROUTES_cell;",
		"#define ROUTES (__eagerlink_ROUTES_cell.value)",
	} {
		if !strings.Contains(hdr, want) {
			t.Errorf("header missing %q\n%s", want, hdr)
		}
	}

	src := string(out.Source)
	if !strings.Contains(src, `#include "eagerlink_bindings.h"`) {
		t.Error("source should include the generated header")
	}
	// public cell is not static
	if strings.Contains(src, "static __eagerlink_ROUTES_box") {
		t.Error("public cell must have external linkage")
	}
	if !strings.Contains(src, "__eagerlink_ROUTES_box __eagerlink_ROUTES_cell;") {
		t.Error("public cell definition missing")
	}
}

func TestGenerate_ExternTeardown(t *testing.T) {
	ds := []binding.Descriptor{
		desc(t, "DEV", "Device", "device_open(0)", 1),
	}
	out, err := Generate(ds, Target{Family: section.FamilyUnix})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(out.Source), "device_close(&__eagerlink_DEV_cell.value);") {
		t.Errorf("extern teardown call missing\n%s", out.Source)
	}
}

func TestGenerate_NestedTeardown(t *testing.T) {
	ds := []binding.Descriptor{
		desc(t, "POOL", "vec<vec<u8>>", "pool_build()", 5),
	}
	out, err := Generate(ds, Target{Family: section.FamilyUnix})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	src := string(out.Source)
	// inner buffers freed before the outer one
	inner := strings.Index(src, "free(p0[i0].ptr);")
	outer := strings.Index(src, "free(__eagerlink_POOL_cell.value.ptr);")
	if inner < 0 || outer < 0 {
		t.Fatalf("teardown statements missing\n%s", src)
	}
	if inner > outer {
		t.Error("inner teardown must precede the outer free")
	}
}

func TestGenerate_Duplicate(t *testing.T) {
	ds := []binding.Descriptor{
		desc(t, "A", "u32", "1", 0),
		desc(t, "A", "u64", "2", 1),
	}
	_, err := Generate(ds, Target{Family: section.FamilyUnix})
	if err == nil {
		t.Fatal("Generate() should reject duplicate binding names")
	}
	target := &errors.Error{Phase: errors.PhaseGenerate, Kind: errors.KindDuplicate}
	if !goerrors.Is(err, target) {
		t.Errorf("error = %v, want duplicate", err)
	}
}

func TestGenerate_AllOrNothing(t *testing.T) {
	ds := []binding.Descriptor{
		desc(t, "OK", "u32", "1", 0),
		desc(t, "BAD", "Unshared", "make()", 1),
	}
	out, err := Generate(ds, Target{Family: section.FamilyUnix})
	if err == nil {
		t.Fatal("Generate() should fail when any binding fails")
	}
	if out != nil {
		t.Error("no artifacts may be produced on failure")
	}
}
