package gen

import (
	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/gen/internal/cwriter"
	"github.com/eagerlink/eagerlink/section"
)

// render fills Output.Source and, when any binding is public, Output.Header.
func render(out *Output) error {
	var anyPublic bool
	for _, m := range out.Modules {
		if m.Binding.Visibility == binding.Public {
			anyPublic = true
			break
		}
	}

	var hw *cwriter.Writer
	if anyPublic {
		hw = cwriter.NewWriter()
		renderHeaderPrelude(hw, out)
	}

	sw := cwriter.NewWriter()
	renderSourcePrelude(sw, out, anyPublic)

	for _, m := range out.Modules {
		public := m.Binding.Visibility == binding.Public

		// Typedefs for a public binding live in the header, so facade
		// users can name the value type; private ones stay in the source.
		declW := sw
		if public {
			declW = hw
		}

		l := newLowerer(declW, m.Binding.Name)
		declW.Blank()
		declW.Comment("%s: %s, priority %d", m.Binding.Name, m.Binding.Type.String(), m.Binding.Priority)
		valueC := l.lower(m.Binding.Type)
		declW.Open("typedef struct {")
		declW.Line("%s value;", valueC)
		declW.Close("} %s;", m.BoxSym)

		if public {
			hw.Line("extern %s %s;", m.BoxSym, m.CellSym)
			hw.Blank()
			hw.Comment("Read path into the live value. Valid only after the construct phase.")
			hw.Line("#define %s (%s.value)", m.Binding.Name, m.CellSym)
			sw.Blank()
			sw.Comment("%s: storage and lifecycle procedures", m.Binding.Name)
			sw.Line("%s %s;", m.BoxSym, m.CellSym)
		} else {
			sw.Line("static %s %s;", m.BoxSym, m.CellSym)
		}

		// All composite typedefs are memoized by now; teardown emission
		// below only reads names.
		l.w = sw

		sw.Blank()
		renderCtor(sw, m)
		sw.Blank()
		renderDtor(sw, l, m)
		sw.Blank()
		renderEntry(sw, m.Family, m.Ctor)
		renderEntry(sw, m.Family, m.Dtor)
	}

	out.Source = sw.Bytes()
	if hw != nil {
		hw.Blank()
		hw.Line("#endif /* EAGERLINK_BINDINGS_H */")
		out.Header = hw.Bytes()
	}
	return nil
}

func renderSourcePrelude(w *cwriter.Writer, out *Output, anyPublic bool) {
	w.Comment("Generated by eagerlink. DO NOT EDIT.")
	w.Include("stdint.h")
	w.Include("stddef.h")
	w.Include("stdlib.h")
	if anyPublic {
		w.Raw("#include \"" + out.HeaderName + "\"\n")
	}

	// The vec header typedef is only needed when a private binding uses
	// vec or str; public ones pull it in through the header.
	needVec := false
	for _, m := range out.Modules {
		if m.Binding.Visibility != binding.Public && typeUsesVec(m.Binding.Type) {
			needVec = true
			break
		}
	}
	if needVec {
		w.Blank()
		renderVecTypedef(w)
	}
}

func renderHeaderPrelude(w *cwriter.Writer, out *Output) {
	w.Comment("Generated by eagerlink. DO NOT EDIT.")
	w.Line("#ifndef EAGERLINK_BINDINGS_H")
	w.Line("#define EAGERLINK_BINDINGS_H")
	w.Blank()
	w.Include("stdint.h")
	w.Include("stddef.h")

	for _, m := range out.Modules {
		if m.Binding.Visibility == binding.Public && typeUsesVec(m.Binding.Type) {
			w.Blank()
			renderVecTypedef(w)
			break
		}
	}
}

// renderVecTypedef emits the shared vec/str header layout, guarded so the
// generated header and source can both carry it.
func renderVecTypedef(w *cwriter.Writer) {
	w.Line("#ifndef EAGERLINK_VEC_DEFINED")
	w.Line("#define EAGERLINK_VEC_DEFINED")
	w.Open("typedef struct {")
	w.Line("void *ptr;")
	w.Line("size_t len;")
	w.Line("size_t cap;")
	w.Close("} %s;", vecTypeName)
	w.Line("#endif")
}

// renderCtor emits the constructor procedure: evaluate the initializer
// exactly once and write the result into the cell. Placement in the
// constructor table plus single registration is what bounds it to one
// invocation; no redundant already-ran guard is emitted.
func renderCtor(w *cwriter.Writer, m *Module) {
	w.Open("static void %s(void) {", m.Ctor.Proc)
	w.Line("%s = (%s){ .value = %s };", m.CellSym, m.BoxSym, m.Binding.Init)
	w.Close("}")
}

// renderDtor emits the destructor procedure, running the value type's own
// teardown over the cell contents. Bindings without teardown still get a
// procedure and a registration entry, keeping the lifecycle uniform.
func renderDtor(w *cwriter.Writer, l *lowerer, m *Module) {
	w.Open("static void %s(void) {", m.Dtor.Proc)
	if m.Binding.Type.HasTeardown() {
		l.emitTeardown(m.Binding.Type, m.CellSym+".value", 0)
	}
	w.Close("}")
}

// renderEntry places one registration record into its scheduled section
// using the platform's section attribute.
func renderEntry(w *cwriter.Writer, family section.Family, e RegistrationEntry) {
	entry := e.Proc + "_entry"
	switch family {
	case section.FamilyWindows:
		w.Line("#pragma section(%q, read)", e.Section)
		w.Line("__declspec(allocate(%q))", e.Section)
		w.Line("static void (*%s)(void) = %s;", entry, e.Proc)
	default:
		w.Line("__attribute__((used, section(%q)))", e.Section)
		w.Line("static void (*%s)(void) = %s;", entry, e.Proc)
	}
}

func typeUsesVec(t *binding.Type) bool {
	switch t.Kind {
	case binding.KindVec, binding.KindStr:
		return true
	case binding.KindPtr, binding.KindArray:
		return typeUsesVec(t.Elem)
	case binding.KindStruct:
		for _, f := range t.Fields {
			if typeUsesVec(f.Type) {
				return true
			}
		}
	}
	return false
}
