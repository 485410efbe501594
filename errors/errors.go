package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the pipeline the error occurred
type Phase string

const (
	PhaseParse     Phase = "parse"     // manifest / type expression parsing
	PhaseValidate  Phase = "validate"  // descriptor and capability validation
	PhaseSchedule  Phase = "schedule"  // section name scheduling
	PhaseGenerate  Phase = "generate"  // artifact generation
	PhaseLink      Phase = "link"      // loader image assembly
	PhaseConstruct Phase = "construct" // simulated pre-entry construct phase
	PhaseTeardown  Phase = "teardown"  // simulated post-entry destruct phase
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidData         Kind = "invalid_data"
	KindDuplicate           Kind = "duplicate"
	KindCapability          Kind = "capability"
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindNotFound            Kind = "not_found"
	KindState               Kind = "state"
	KindStartupFault        Kind = "startup_fault"
)

// Error is the structured error type used throughout the toolchain
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Binding string
	Section string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Binding != "" || e.Section != "" {
		b.WriteString(": ")
		if e.Binding != "" && e.Section != "" {
			b.WriteString("binding ")
			b.WriteString(e.Binding)
			b.WriteString(", section ")
			b.WriteString(e.Section)
		} else if e.Binding != "" {
			b.WriteString("binding ")
			b.WriteString(e.Binding)
		} else {
			b.WriteString("section ")
			b.WriteString(e.Section)
		}
	}

	if e.Detail != "" {
		if e.Binding != "" || e.Section != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Binding sets the binding name
func (b *Builder) Binding(name string) *Builder {
	b.err.Binding = name
	return b
}

// Section sets the section name
func (b *Builder) Section(name string) *Builder {
	b.err.Section = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedPlatform creates a platform rejection error. There is no
// runtime fallback for an unsupported family, so this always blocks
// artifact production.
func UnsupportedPlatform(phase Phase, family string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedPlatform,
		Detail: fmt.Sprintf("platform family %q has no native constructor/destructor table mechanism", family),
		Value:  family,
	}
}

// MissingCapability creates a capability gate failure for a value type
func MissingCapability(binding, typeName, capability string) *Error {
	return &Error{
		Phase:   PhaseValidate,
		Kind:    KindCapability,
		Binding: binding,
		Detail:  fmt.Sprintf("type %s lacks the %s capability", typeName, capability),
	}
}

// Duplicate creates a duplicate declaration error
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q declared more than once", what, name),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// State creates a lifecycle state violation error
func State(phase Phase, binding, detail string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindState,
		Binding: binding,
		Detail:  detail,
	}
}

// StartupFault creates the error reported when a constructor procedure
// fails during the simulated construct phase. The real platform loader
// would abort the process at this point.
func StartupFault(binding string, cause error) *Error {
	return &Error{
		Phase:   PhaseConstruct,
		Kind:    KindStartupFault,
		Binding: binding,
		Detail:  "constructor procedure failed before entry point",
		Cause:   cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
