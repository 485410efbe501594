package gen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/capability"
	"github.com/eagerlink/eagerlink/errors"
	"github.com/eagerlink/eagerlink/section"
)

// Target selects the platform family artifacts are generated for.
type Target struct {
	Family section.Family
}

// RegistrationEntry is one function-pointer record placed at link time into
// a scheduled section. Exactly two exist per binding, one per phase, and
// they live for the entire process.
type RegistrationEntry struct {
	Section string
	Proc    string
}

// Module is the planned generated unit for one binding: its storage cell,
// its two lifecycle procedures, and their section placements.
type Module struct {
	Binding binding.Descriptor
	Family  section.Family
	Size    uint32
	Align   uint32
	CellSym string
	BoxSym  string
	Ctor    RegistrationEntry
	Dtor    RegistrationEntry
}

// Plan validates one descriptor through the capability gate, schedules both
// phases, and produces the module model. Any failure blocks generation for
// the binding; Generate widens that to the whole manifest.
func Plan(d binding.Descriptor, target Target) (*Module, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := capability.Check(d.Name, d.Type); err != nil {
		return nil, err
	}

	ctorSec, err := section.Name(target.Family, section.PhaseConstruct, d.Priority)
	if err != nil {
		return nil, err
	}
	dtorSec, err := section.Name(target.Family, section.PhaseDestruct, d.Priority)
	if err != nil {
		return nil, err
	}

	size, _ := d.Type.Size() // known: the capability gate passed
	m := &Module{
		Binding: d,
		Family:  target.Family,
		Size:    size,
		Align:   d.Type.Align(),
		CellSym: fmt.Sprintf("__eagerlink_%s_cell", d.Name),
		BoxSym:  fmt.Sprintf("__eagerlink_%s_box", d.Name),
		Ctor: RegistrationEntry{
			Section: ctorSec,
			Proc:    fmt.Sprintf("__eagerlink_%s_ctor", d.Name),
		},
		Dtor: RegistrationEntry{
			Section: dtorSec,
			Proc:    fmt.Sprintf("__eagerlink_%s_dtor", d.Name),
		},
	}

	Logger().Debug("planned binding",
		zap.String("binding", d.Name),
		zap.String("type", d.Type.String()),
		zap.Uint16("priority", d.Priority),
		zap.String("ctor_section", ctorSec),
		zap.String("dtor_section", dtorSec),
	)

	return m, nil
}

// Output is the generated artifact set for one manifest.
type Output struct {
	Modules    []*Module
	Source     []byte
	Header     []byte // empty when no binding is public
	HeaderName string
}

// Generate plans every descriptor and renders the translation unit plus,
// when any binding is public, the facade header. Generation is
// all-or-nothing: any capability or platform error blocks every artifact.
func Generate(ds []binding.Descriptor, target Target) (*Output, error) {
	seen := make(map[string]bool, len(ds))
	modules := make([]*Module, 0, len(ds))
	for _, d := range ds {
		if seen[d.Name] {
			return nil, errors.Duplicate(errors.PhaseGenerate, "binding", d.Name)
		}
		seen[d.Name] = true

		m, err := Plan(d, target)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}

	out := &Output{
		Modules:    modules,
		HeaderName: "eagerlink_bindings.h",
	}
	if err := render(out); err != nil {
		return nil, err
	}

	Logger().Info("generated artifacts",
		zap.Int("bindings", len(modules)),
		zap.String("family", target.Family.String()),
		zap.Int("source_bytes", len(out.Source)),
		zap.Int("header_bytes", len(out.Header)),
	)

	return out, nil
}
