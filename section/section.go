package section

import (
	"fmt"

	"github.com/eagerlink/eagerlink/errors"
)

// Family identifies a platform family by its native constructor/destructor
// table mechanism.
type Family uint8

const (
	FamilyUnsupported Family = iota
	FamilyWindows
	FamilyApple
	FamilyUnix
)

func (f Family) String() string {
	switch f {
	case FamilyWindows:
		return "windows"
	case FamilyApple:
		return "apple"
	case FamilyUnix:
		return "unix"
	}
	return "unsupported"
}

// Phase selects between the pre-entry construct table and the post-entry
// destruct table.
type Phase uint8

const (
	PhaseConstruct Phase = iota
	PhaseDestruct
)

func (p Phase) String() string {
	if p == PhaseDestruct {
		return "destruct"
	}
	return "construct"
}

// Section name prefixes per family. Priority is appended zero-padded to
// width 5 so the platform's own lexical section ordering reflects numeric
// priority order.
const (
	windowsConstructPrefix = ".CRT$XCU"
	windowsDestructPrefix  = ".CRT$XPU"
	unixConstructPrefix    = ".init_array."
	unixDestructPrefix     = ".fini_array."

	// Priority ordering is not supported on the Apple family; both phases
	// use one fixed segment/section pair and the loader visits entries in
	// its own order. This is a known platform limitation, not a defect in
	// the scheduler.
	appleConstructSection = "__DATA,__mod_init_func"
	appleDestructSection  = "__DATA,__mod_term_func"
)

// MaxPriority is the highest representable priority and the default for
// bindings that do not declare one: initialize last, destroy first.
const MaxPriority uint16 = 65535

// Name maps a family, phase and priority to the linker section the
// registration entry must be placed in. The mapping is deterministic and
// total over supported families; the unsupported family is a hard
// build-time rejection, never a fallback.
func Name(f Family, p Phase, priority uint16) (string, error) {
	switch f {
	case FamilyWindows:
		if p == PhaseDestruct {
			return fmt.Sprintf("%s%05d", windowsDestructPrefix, priority), nil
		}
		return fmt.Sprintf("%s%05d", windowsConstructPrefix, priority), nil
	case FamilyApple:
		if p == PhaseDestruct {
			return appleDestructSection, nil
		}
		return appleConstructSection, nil
	case FamilyUnix:
		if p == PhaseDestruct {
			return fmt.Sprintf("%s%05d", unixDestructPrefix, priority), nil
		}
		return fmt.Sprintf("%s%05d", unixConstructPrefix, priority), nil
	}
	return "", errors.UnsupportedPlatform(errors.PhaseSchedule, f.String())
}

// Ordered reports whether the family honors priority at all. On the Apple
// family all bindings run in loader-determined order for both phases.
func (f Family) Ordered() bool {
	return f == FamilyWindows || f == FamilyUnix
}

// FamilyForOS maps a GOOS value to its platform family.
func FamilyForOS(goos string) Family {
	switch goos {
	case "windows":
		return FamilyWindows
	case "darwin", "ios":
		return FamilyApple
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "illumos", "aix":
		return FamilyUnix
	}
	return FamilyUnsupported
}

// ParseFamily resolves a family from its textual name as used on the CLI
// and in manifests. Both family names and GOOS values are accepted.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "windows":
		return FamilyWindows, nil
	case "apple":
		return FamilyApple, nil
	case "unix":
		return FamilyUnix, nil
	}
	if f := FamilyForOS(name); f != FamilyUnsupported {
		return f, nil
	}
	return FamilyUnsupported, errors.UnsupportedPlatform(errors.PhaseSchedule, name)
}
