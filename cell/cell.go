package cell

import (
	"fmt"
)

// State is the lifecycle state of a storage cell.
type State uint8

const (
	Uninitialized State = iota
	Initialized
	Destroyed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Destroyed:
		return "destroyed"
	}
	return "uninitialized"
}

// Cell is the raw storage backing one eagerly-initialized global: a value
// slot written at most once by the construct phase and destroyed at most
// once by the destruct phase.
//
// The zero value is an uninitialized cell. Exactly one Init and at most one
// Destroy may ever occur, and only the generated constructor and destructor
// procedures perform them; violating that order is a lifecycle bug in the
// caller, not a recoverable condition, so both transitions panic on misuse
// instead of returning an error the construct phase could not act on.
type Cell[T any] struct {
	value T
	state State
}

// Init writes the initializer's result into the cell, transitioning it
// from Uninitialized to Initialized. It must be called exactly once.
func (c *Cell[T]) Init(v T) {
	if c.state != Uninitialized {
		panic(fmt.Sprintf("cell: Init on %s cell", c.state))
	}
	c.value = v
	c.state = Initialized
}

// Destroy runs the value's teardown over the cell contents and transitions
// it from Initialized to Destroyed. A nil fin skips teardown but still
// consumes the cell.
func (c *Cell[T]) Destroy(fin func(*T)) {
	if c.state != Initialized {
		panic(fmt.Sprintf("cell: Destroy on %s cell", c.state))
	}
	if fin != nil {
		fin(&c.value)
	}
	var zero T
	c.value = zero
	c.state = Destroyed
}

// State reports the cell's lifecycle state. It exists so the two phases
// can be simulated and asserted deterministically; generated readers never
// consult it.
func (c *Cell[T]) State() State {
	return c.state
}

// Static is the access facade for one binding: a non-owning read path into
// its cell. Reading assumes the cell is Initialized; by the time ordinary
// program logic runs, the construct phase has already completed, so the
// precondition is structural and Get performs no check. Reading during
// another eager initializer or after teardown has begun is a misuse of the
// contract, not a reported error.
type Static[T any] struct {
	cell *Cell[T]
}

// NewStatic binds a facade to a cell.
func NewStatic[T any](c *Cell[T]) Static[T] {
	return Static[T]{cell: c}
}

// Get yields a reference to the live value.
func (s Static[T]) Get() *T {
	return &s.cell.value
}
