package loader

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/eagerlink/eagerlink/errors"
	"github.com/eagerlink/eagerlink/section"
)

// tableEntry is one registered procedure in a constructor or destructor
// table, keyed by the section it was placed in and its registration order.
type tableEntry struct {
	section string
	binding string
	proc    func()
	seq     int
}

// Image models a linked binary's constructor and destructor tables and the
// platform loader that walks them: construct phase before the entry point,
// destruct phase after it returns normally.
type Image struct {
	family section.Family
	ctors  []tableEntry
	dtors  []tableEntry
	seq    int
	booted bool
}

// NewImage creates an empty image for one platform family.
func NewImage(family section.Family) *Image {
	return &Image{family: family}
}

// Family returns the image's platform family.
func (im *Image) Family() section.Family {
	return im.family
}

// Register places one procedure into the table for the given phase under
// an already-scheduled section name. Registration is link-time work; it is
// rejected once the image has booted.
func (im *Image) Register(phase section.Phase, sectionName, bindingName string, proc func()) error {
	if im.booted {
		return errors.State(errors.PhaseLink, bindingName, "image already booted")
	}
	if proc == nil {
		return errors.New(errors.PhaseLink, errors.KindInvalidInput).
			Binding(bindingName).
			Detail("nil procedure").
			Build()
	}
	e := tableEntry{section: sectionName, binding: bindingName, proc: proc, seq: im.seq}
	im.seq++
	if phase == section.PhaseDestruct {
		im.dtors = append(im.dtors, e)
	} else {
		im.ctors = append(im.ctors, e)
	}
	Logger().Debug("registered procedure",
		zap.String("binding", bindingName),
		zap.String("section", sectionName),
		zap.String("phase", phase.String()),
	)
	return nil
}

// Boot runs the full process lifecycle once: every registered constructor
// in table order, then the entry point, then every registered destructor.
//
// Constructor tables are walked in ascending lexical section order, which
// is how the zero-padded priority encodings order on the real platforms;
// destructor tables are walked in descending order, so destructors run in
// reverse priority order relative to constructors. On the Apple family all
// sections compare equal and registration order (reversed for destructors)
// is all that remains, matching that platform's lack of priority control.
//
// A panicking constructor is a startup fault: the entry point never runs,
// mirroring the platform loader aborting the process. Destructors are
// skipped in that case, exactly as they are on abnormal termination.
func (im *Image) Boot(entry func() int) (int, error) {
	if im.booted {
		return 0, errors.State(errors.PhaseLink, "", "image already booted")
	}
	im.booted = true

	sort.SliceStable(im.ctors, func(i, j int) bool {
		if im.ctors[i].section != im.ctors[j].section {
			return im.ctors[i].section < im.ctors[j].section
		}
		return im.ctors[i].seq < im.ctors[j].seq
	})
	sort.SliceStable(im.dtors, func(i, j int) bool {
		if im.dtors[i].section != im.dtors[j].section {
			return im.dtors[i].section > im.dtors[j].section
		}
		return im.dtors[i].seq > im.dtors[j].seq
	})

	for _, e := range im.ctors {
		if err := runProc(e); err != nil {
			return 0, errors.StartupFault(e.binding, err)
		}
		Logger().Debug("constructed", zap.String("binding", e.binding), zap.String("section", e.section))
	}

	code := entry()

	for _, e := range im.dtors {
		if err := runProc(e); err != nil {
			return code, errors.Wrap(errors.PhaseTeardown, errors.KindState, err,
				fmt.Sprintf("destructor for binding %s failed", e.binding))
		}
		Logger().Debug("destroyed", zap.String("binding", e.binding), zap.String("section", e.section))
	}

	return code, nil
}

func runProc(e tableEntry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	e.proc()
	return nil
}
