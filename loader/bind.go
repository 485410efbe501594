package loader

import (
	"github.com/eagerlink/eagerlink/cell"
	"github.com/eagerlink/eagerlink/gen"
	"github.com/eagerlink/eagerlink/section"
)

// Bind wires one planned module into the image, with Go closures standing
// in for the generated procedures: the constructor evaluates init exactly
// once and writes the result into c, the destructor runs fin over the cell
// contents. It returns the binding's access facade.
//
// The initializer contract carries over from the generated form: it must
// not read another binding's facade and must not start threads.
func Bind[T any](im *Image, m *gen.Module, c *cell.Cell[T], init func() T, fin func(*T)) (cell.Static[T], error) {
	name := m.Binding.Name
	err := im.Register(section.PhaseConstruct, m.Ctor.Section, name, func() {
		c.Init(init())
	})
	if err != nil {
		return cell.Static[T]{}, err
	}
	err = im.Register(section.PhaseDestruct, m.Dtor.Section, name, func() {
		c.Destroy(fin)
	})
	if err != nil {
		return cell.Static[T]{}, err
	}
	return cell.NewStatic(c), nil
}
