package binding

import (
	"fmt"
	"strings"

	"github.com/eagerlink/eagerlink/binding/internal/typeexpr"
	"github.com/eagerlink/eagerlink/errors"
)

// Kind discriminates value types.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindF32
	KindF64
	KindChar
	KindPtr
	KindArray
	KindVec
	KindStr
	KindStruct
	KindExtern
)

// PtrSize is the storage size of a pointer on every supported family.
// All three families are 64-bit targets.
const PtrSize = 8

// vecHeaderSize is the fixed header of vec and str values: data pointer,
// length, capacity. The contents live on the heap; only the header occupies
// the storage cell, which is what keeps these types fixed-layout.
const vecHeaderSize = 3 * PtrSize

// Type is the semantic type of a stored value.
type Type struct {
	Kind   Kind
	Name   string      // extern type name; empty otherwise
	Elem   *Type       // ptr, array, vec element
	Len    uint32      // array length
	Fields []Field     // struct members
	Extern *ExternInfo // extern declaration, nil otherwise
}

// Field is one named struct member.
type Field struct {
	Name string
	Type *Type
}

// ExternInfo carries the manifest-declared properties of a named external
// type. The toolchain cannot inspect such types, so their layout and
// capabilities must be stated explicitly.
type ExternInfo struct {
	Size      uint32
	Align     uint32
	SizeKnown bool
	Share     bool
	Teardown  string // destructor symbol, empty when none
}

var primitives = map[string]Kind{
	"bool": KindBool,
	"u8":   KindU8,
	"u16":  KindU16,
	"u32":  KindU32,
	"u64":  KindU64,
	"i8":   KindI8,
	"i16":  KindI16,
	"i32":  KindI32,
	"i64":  KindI64,
	"f32":  KindF32,
	"f64":  KindF64,
	"char": KindChar,
	"str":  KindStr,
}

// ParseType parses a type expression, resolving named identifiers against
// the supplied extern type declarations.
func ParseType(src string, externs map[string]*Type) (*Type, error) {
	node, err := typeexpr.New(typeexpr.Tokenize(src)).Parse()
	if err != nil {
		return nil, errors.ParseFailed(fmt.Sprintf("type expression %q", src), err)
	}
	return fromNode(node, externs)
}

func fromNode(n *typeexpr.Node, externs map[string]*Type) (*Type, error) {
	switch n.Kind {
	case typeexpr.NodeIdent:
		if k, ok := primitives[n.Name]; ok {
			return &Type{Kind: k}, nil
		}
		if t, ok := externs[n.Name]; ok {
			return t, nil
		}
		return nil, errors.NotFound(errors.PhaseParse, "type", n.Name)

	case typeexpr.NodePtr:
		elem, err := fromNode(n.Elem, externs)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindPtr, Elem: elem}, nil

	case typeexpr.NodeVec:
		elem, err := fromNode(n.Elem, externs)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindVec, Elem: elem}, nil

	case typeexpr.NodeArray:
		elem, err := fromNode(n.Elem, externs)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindArray, Elem: elem, Len: n.Len}, nil

	case typeexpr.NodeStruct:
		t := &Type{Kind: KindStruct}
		seen := make(map[string]bool, len(n.Fields))
		for _, f := range n.Fields {
			if seen[f.Name] {
				return nil, errors.Duplicate(errors.PhaseParse, "struct field", f.Name)
			}
			seen[f.Name] = true
			ft, err := fromNode(f.Type, externs)
			if err != nil {
				return nil, err
			}
			t.Fields = append(t.Fields, Field{Name: f.Name, Type: ft})
		}
		return t, nil

	case typeexpr.NodeExtern:
		if t, ok := externs[n.Name]; ok {
			return t, nil
		}
		return nil, errors.NotFound(errors.PhaseParse, "extern type", n.Name)
	}
	return nil, errors.InvalidData(errors.PhaseParse, nil, "unknown type node")
}

// Size returns the storage footprint of the type in bytes. ok is false
// when the size is not statically known, which can only happen for extern
// types declared without one.
func (t *Type) Size() (uint32, bool) {
	switch t.Kind {
	case KindBool, KindU8, KindI8:
		return 1, true
	case KindU16, KindI16:
		return 2, true
	case KindU32, KindI32, KindF32, KindChar:
		return 4, true
	case KindU64, KindI64, KindF64:
		return 8, true
	case KindPtr:
		return PtrSize, true
	case KindVec, KindStr:
		return vecHeaderSize, true
	case KindArray:
		es, ok := t.Elem.Size()
		if !ok {
			return 0, false
		}
		return es * t.Len, true
	case KindStruct:
		var off, maxAlign uint32
		for _, f := range t.Fields {
			fs, ok := f.Type.Size()
			if !ok {
				return 0, false
			}
			fa := f.Type.Align()
			if fa > maxAlign {
				maxAlign = fa
			}
			off = alignUp(off, fa) + fs
		}
		if maxAlign == 0 {
			return 0, true
		}
		return alignUp(off, maxAlign), true
	case KindExtern:
		if t.Extern == nil || !t.Extern.SizeKnown {
			return 0, false
		}
		return t.Extern.Size, true
	}
	return 0, false
}

// Align returns the required alignment of the type in bytes.
func (t *Type) Align() uint32 {
	switch t.Kind {
	case KindBool, KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32, KindChar:
		return 4
	case KindU64, KindI64, KindF64, KindPtr, KindVec, KindStr:
		return 8
	case KindArray:
		return t.Elem.Align()
	case KindStruct:
		var max uint32 = 1
		for _, f := range t.Fields {
			if a := f.Type.Align(); a > max {
				max = a
			}
		}
		return max
	case KindExtern:
		if t.Extern != nil && t.Extern.Align > 0 {
			return t.Extern.Align
		}
	}
	return 1
}

// HasTeardown reports whether destroying a value of this type requires
// running any code. vec and str own heap contents; extern types may declare
// a destructor symbol; aggregates inherit from their members.
func (t *Type) HasTeardown() bool {
	switch t.Kind {
	case KindVec, KindStr:
		return true
	case KindArray:
		return t.Elem.HasTeardown()
	case KindStruct:
		for _, f := range t.Fields {
			if f.Type.HasTeardown() {
				return true
			}
		}
		return false
	case KindExtern:
		return t.Extern != nil && t.Extern.Teardown != ""
	}
	return false
}

// String renders the canonical type expression.
func (t *Type) String() string {
	switch t.Kind {
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindChar:
		return "char"
	case KindStr:
		return "str"
	case KindPtr:
		return "ptr<" + t.Elem.String() + ">"
	case KindVec:
		return "vec<" + t.Elem.String() + ">"
	case KindArray:
		return fmt.Sprintf("array<%s, %d>", t.Elem.String(), t.Len)
	case KindStruct:
		var b strings.Builder
		b.WriteString("struct{")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(f.Type.String())
		}
		b.WriteByte('}')
		return b.String()
	case KindExtern:
		return t.Name
	}
	return "unknown"
}

func alignUp(n, align uint32) uint32 {
	if align == 0 {
		return n
	}
	return (n + align - 1) / align * align
}
