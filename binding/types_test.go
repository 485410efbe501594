package binding

import (
	"testing"
)

func mustParse(t *testing.T, src string, externs map[string]*Type) *Type {
	t.Helper()
	ty, err := ParseType(src, externs)
	if err != nil {
		t.Fatalf("ParseType(%q) error = %v", src, err)
	}
	return ty
}

func TestType_SizeAlign(t *testing.T) {
	tests := []struct {
		expr  string
		size  uint32
		align uint32
	}{
		{"bool", 1, 1},
		{"u8", 1, 1},
		{"u16", 2, 2},
		{"u32", 4, 4},
		{"u64", 8, 8},
		{"i64", 8, 8},
		{"f32", 4, 4},
		{"f64", 8, 8},
		{"char", 4, 4},
		{"ptr<u8>", 8, 8},
		{"vec<u8>", 24, 8},
		{"vec<vec<u64>>", 24, 8},
		{"str", 24, 8},
		{"array<u32, 256>", 1024, 4},
		{"array<u8, 3>", 3, 1},
		{"struct{}", 0, 1},
		{"struct{x: f64, y: f64}", 16, 8},
		// u8 at 0, pad to 8, u64 at 8, tail padded to align 8
		{"struct{tag: u8, val: u64}", 16, 8},
		// u64 at 0, u8 at 8, tail pad to 16
		{"struct{val: u64, tag: u8}", 16, 8},
		{"struct{a: u16, b: u8}", 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ty := mustParse(t, tt.expr, nil)
			size, ok := ty.Size()
			if !ok {
				t.Fatalf("Size() not known for %q", tt.expr)
			}
			if size != tt.size {
				t.Errorf("Size() = %d, want %d", size, tt.size)
			}
			if a := ty.Align(); a != tt.align {
				t.Errorf("Align() = %d, want %d", a, tt.align)
			}
		})
	}
}

func TestType_Extern(t *testing.T) {
	externs := map[string]*Type{
		"Device": {
			Kind: KindExtern,
			Name: "Device",
			Extern: &ExternInfo{
				Size: 24, Align: 8, SizeKnown: true, Share: true, Teardown: "device_close",
			},
		},
		"Opaque": {
			Kind:   KindExtern,
			Name:   "Opaque",
			Extern: &ExternInfo{Share: true},
		},
	}

	dev := mustParse(t, "Device", externs)
	size, ok := dev.Size()
	if !ok || size != 24 {
		t.Errorf("Device size = %d/%v, want 24/true", size, ok)
	}
	if dev.Align() != 8 {
		t.Errorf("Device align = %d, want 8", dev.Align())
	}
	if !dev.HasTeardown() {
		t.Error("Device should have teardown")
	}

	op := mustParse(t, "Opaque", externs)
	if _, ok := op.Size(); ok {
		t.Error("Opaque size should be unknown")
	}

	// struct containing an unknown-size member has unknown size
	wrapped := mustParse(t, "struct{inner: Opaque}", externs)
	if _, ok := wrapped.Size(); ok {
		t.Error("struct with Opaque member should have unknown size")
	}

	// extern "..." form resolves too
	if ty := mustParse(t, `extern "Device"`, externs); ty != dev {
		t.Error("extern form did not resolve to the declared type")
	}

	if _, err := ParseType("Missing", externs); err == nil {
		t.Error("unknown type name should fail")
	}
}

func TestType_HasTeardown(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"u64", false},
		{"ptr<u8>", false},
		{"vec<u8>", true},
		{"str", true},
		{"array<u32, 8>", false},
		{"array<vec<u8>, 8>", true},
		{"struct{x: f64}", false},
		{"struct{x: f64, name: str}", true},
	}
	for _, tt := range tests {
		ty := mustParse(t, tt.expr, nil)
		if got := ty.HasTeardown(); got != tt.want {
			t.Errorf("%q HasTeardown() = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestType_String(t *testing.T) {
	tests := []string{
		"u32",
		"ptr<u8>",
		"vec<u64>",
		"array<u32, 256>",
		"struct{x: f64, y: f64}",
	}
	for _, src := range tests {
		ty := mustParse(t, src, nil)
		if ty.String() != src {
			t.Errorf("String() = %q, want %q", ty.String(), src)
		}
		// canonical form re-parses to an equal rendering
		again := mustParse(t, ty.String(), nil)
		if again.String() != src {
			t.Errorf("round trip = %q, want %q", again.String(), src)
		}
	}
}

func TestType_DuplicateField(t *testing.T) {
	if _, err := ParseType("struct{x: u8, x: u16}", nil); err == nil {
		t.Error("duplicate struct field should fail")
	}
}

func TestDescriptor_Validate(t *testing.T) {
	u32 := mustParse(t, "u32", nil)

	valid := Descriptor{Name: "ROUTE_TABLE", Type: u32, Init: "42", Priority: 10}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	tests := []struct {
		name string
		d    Descriptor
	}{
		{"empty name", Descriptor{Type: u32, Init: "42"}},
		{"bad name", Descriptor{Name: "9lives", Type: u32, Init: "42"}},
		{"hyphen name", Descriptor{Name: "a-b", Type: u32, Init: "42"}},
		{"nil type", Descriptor{Name: "A", Init: "42"}},
		{"no init", Descriptor{Name: "A", Type: u32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.d.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
