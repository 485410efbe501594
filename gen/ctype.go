package gen

import (
	"fmt"

	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/gen/internal/cwriter"
)

// vecTypeName is the shared C layout for vec and str headers: data pointer,
// length, capacity. The heap contents are owned by the value; only this
// header occupies the storage cell.
const vecTypeName = "eagerlink_vec"

// lowerer assigns C typedef names to every composite type reachable from
// one binding and emits the definitions bottom-up, so each composite is
// usable as a plain type name in declarations, casts and teardown code.
type lowerer struct {
	w       *cwriter.Writer
	prefix  string
	names   map[*binding.Type]string
	n       int
	usedVec bool
}

func newLowerer(w *cwriter.Writer, bindingName string) *lowerer {
	return &lowerer{
		w:      w,
		prefix: "__eagerlink_" + bindingName,
		names:  make(map[*binding.Type]string),
	}
}

// lower returns the C type name for t, emitting typedefs for composites on
// first encounter.
func (l *lowerer) lower(t *binding.Type) string {
	if name, ok := l.names[t]; ok {
		return name
	}

	var name string
	switch t.Kind {
	case binding.KindBool, binding.KindU8:
		name = "uint8_t"
	case binding.KindU16:
		name = "uint16_t"
	case binding.KindU32:
		name = "uint32_t"
	case binding.KindU64:
		name = "uint64_t"
	case binding.KindI8:
		name = "int8_t"
	case binding.KindI16:
		name = "int16_t"
	case binding.KindI32:
		name = "int32_t"
	case binding.KindI64:
		name = "int64_t"
	case binding.KindF32:
		name = "float"
	case binding.KindF64:
		name = "double"
	case binding.KindChar:
		// unicode scalar value
		name = "uint32_t"
	case binding.KindExtern:
		name = t.Name
	case binding.KindVec, binding.KindStr:
		l.usedVec = true
		if t.Kind == binding.KindVec {
			// lower the element for teardown casts even though the cell
			// only stores the header
			l.lower(t.Elem)
		}
		name = vecTypeName
	case binding.KindPtr:
		elem := l.lower(t.Elem)
		name = l.fresh()
		l.w.Line("typedef %s *%s;", elem, name)
	case binding.KindArray:
		elem := l.lower(t.Elem)
		name = l.fresh()
		l.w.Line("typedef %s %s[%d];", elem, name, t.Len)
	case binding.KindStruct:
		fields := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = l.lower(f.Type)
		}
		name = l.fresh()
		l.w.Open("typedef struct {")
		for i, f := range t.Fields {
			l.w.Line("%s %s;", fields[i], f.Name)
		}
		l.w.Close("} %s;", name)
	default:
		name = "void"
	}

	l.names[t] = name
	return name
}

func (l *lowerer) fresh() string {
	name := fmt.Sprintf("%s_t%d", l.prefix, l.n)
	l.n++
	return name
}

// emitTeardown writes the statements destroying one value of type t,
// reachable through the C lvalue expression expr. Ownership follows the
// type: vec and str free their heap buffer after their elements, extern
// types call their declared destructor, aggregates recurse into members.
func (l *lowerer) emitTeardown(t *binding.Type, expr string, depth int) {
	w := l.w
	switch t.Kind {
	case binding.KindVec:
		if t.Elem.HasTeardown() {
			elemC := l.lower(t.Elem)
			w.Open("{")
			w.Line("%s *p%d = (%s *)%s.ptr;", elemC, depth, elemC, expr)
			w.Open("for (size_t i%d = 0; i%d < %s.len; i%d++) {", depth, depth, expr, depth)
			l.emitTeardown(t.Elem, fmt.Sprintf("p%d[i%d]", depth, depth), depth+1)
			w.Close("}")
			w.Close("}")
		}
		w.Line("free(%s.ptr);", expr)
	case binding.KindStr:
		w.Line("free(%s.ptr);", expr)
	case binding.KindArray:
		if !t.Elem.HasTeardown() {
			return
		}
		w.Open("for (size_t i%d = 0; i%d < %d; i%d++) {", depth, depth, t.Len, depth)
		l.emitTeardown(t.Elem, fmt.Sprintf("%s[i%d]", expr, depth), depth+1)
		w.Close("}")
	case binding.KindStruct:
		for _, f := range t.Fields {
			if f.Type.HasTeardown() {
				l.emitTeardown(f.Type, expr+"."+f.Name, depth)
			}
		}
	case binding.KindExtern:
		if t.Extern != nil && t.Extern.Teardown != "" {
			w.Line("%s(&%s);", t.Extern.Teardown, expr)
		}
	}
}
