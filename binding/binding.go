package binding

import (
	"unicode"

	"github.com/eagerlink/eagerlink/errors"
)

// Visibility is the access scope of the generated facade. It affects only
// generated linkage, never lifecycle behavior.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// Descriptor is the resolved, validated description of one declared global.
type Descriptor struct {
	// Name uniquely identifies the binding within its manifest.
	Name string

	// Type is the semantic type of the stored value. It must be fixed-size
	// and nameable at build time.
	Type *Type

	// Init is the initializer body source, compiled into the generated
	// constructor procedure and evaluated exactly once, before the entry
	// point. It must not reference another binding or the cell it
	// initializes, and must not start threads.
	Init string

	// Priority orders construction relative to other bindings. Lower
	// priorities construct first and destroy last. Defaults to 65535:
	// initialize last, destroy first.
	Priority uint16

	Visibility Visibility
}

// Validate checks the descriptor's structural invariants. The capability
// gate over Type is separate, in the capability package.
func (d *Descriptor) Validate() error {
	if !validName(d.Name) {
		return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Binding(d.Name).
			Detail("binding name must be a non-empty identifier").
			Build()
	}
	if d.Type == nil {
		return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Binding(d.Name).
			Detail("binding has no value type").
			Build()
	}
	if d.Init == "" {
		return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Binding(d.Name).
			Detail("binding has no initializer").
			Build()
	}
	return nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
