package capability

import (
	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/errors"
)

// Capability names the compile-time properties a value type must satisfy
// before it can back an eagerly-initialized global.
type Capability string

const (
	// Share: the value may be read by any number of concurrent readers
	// after initialization, with no synchronization added by this system.
	Share Capability = "share"

	// FixedLayout: the value has a statically known size and alignment,
	// so an uninitialized storage cell can be emitted for it at build time.
	FixedLayout Capability = "fixed_layout"
)

// Check verifies that t satisfies both required capabilities. Failure is a
// build-time error that blocks code generation; there is no runtime
// fallback, because every read after initialization is lock-free and
// unchecked.
func Check(bindingName string, t *binding.Type) error {
	if err := checkShare(bindingName, t); err != nil {
		return err
	}
	if _, ok := t.Size(); !ok {
		return errors.MissingCapability(bindingName, t.String(), string(FixedLayout))
	}
	return nil
}

func checkShare(bindingName string, t *binding.Type) error {
	switch t.Kind {
	case binding.KindPtr, binding.KindArray, binding.KindVec:
		return checkShare(bindingName, t.Elem)
	case binding.KindStruct:
		for _, f := range t.Fields {
			if err := checkShare(bindingName, f.Type); err != nil {
				return err
			}
		}
		return nil
	case binding.KindExtern:
		if t.Extern == nil || !t.Extern.Share {
			return errors.MissingCapability(bindingName, t.String(), string(Share))
		}
		return nil
	}
	// Primitives, str: immutable after initialization, freely shared.
	return nil
}
