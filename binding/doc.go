// Package binding models declared globals: the binding descriptor produced
// by the declaration surface, and the value type system behind it.
//
// A descriptor names one eagerly-initialized global: its value type, its
// initializer source, a 16-bit priority, and the facade's visibility. Type
// expressions are parsed from their textual form:
//
//	t, err := binding.ParseType("array<u32, 256>", nil)
//
// Named extern types carry manifest-declared layout and capabilities, since
// the toolchain cannot inspect them. Everything else (primitives, ptr, vec,
// str, array, struct) has a known layout computed here.
package binding
