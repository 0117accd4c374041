package errman

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/numlink/numlink"
)

// Error is a registered failure kind. It is immutable once registered;
// WithDebug returns an annotated copy, not a new registry entry.
type Error struct {
	id      int
	name    string
	message string
	debug   string
}

// ID returns the stable negative (or small positive, for built-ins) code.
func (e *Error) ID() int { return e.id }

// Name returns the unique symbolic name.
func (e *Error) Name() string { return e.name }

// Message returns the human message template. Positional slots in the
// template are filled by the host, not by this layer.
func (e *Error) Message() string { return e.message }

// Debug returns the extra detail attached with WithDebug, if any.
func (e *Error) Debug() string { return e.debug }

func (e *Error) Error() string {
	if e.debug != "" {
		return fmt.Sprintf("%s (%d): %s [%s]", e.name, e.id, e.message, e.debug)
	}
	return fmt.Sprintf("%s (%d): %s", e.name, e.id, e.message)
}

// Is matches errors by name, so annotated copies compare equal to their
// registry entry under errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.name == t.name
	}
	return false
}

// WithDebug returns a copy of e carrying extra context for logs. The id,
// name and template are unchanged.
func (e *Error) WithDebug(format string, args ...any) *Error {
	c := *e
	c.debug = fmt.Sprintf(format, args...)
	return &c
}

// ErrorData is the registration input: a unique name plus a message template.
type ErrorData struct {
	Name    string
	Message string
}

// Registry is an append-only map from error names to registered entries.
// Ids are assigned in registration order, descending.
type Registry struct {
	entries map[string]*Error
	order   []string
	nextID  int
	symbol  string
}

// firstErrorID is the id of the first built-in entry (VersionError); every
// later registration gets one less than the previous.
const firstErrorID = 7

// defaultDetailsSymbol is the host-side symbol receiving failure parameters.
const defaultDetailsSymbol = "NumLink`$LastFailureParameters"

// NewRegistry returns a registry preloaded with the built-in catalog.
func NewRegistry() *Registry {
	r := &Registry{
		entries: make(map[string]*Error, len(builtinCatalog)),
		nextID:  firstErrorID,
		symbol:  defaultDetailsSymbol,
	}
	for _, d := range builtinCatalog {
		r.insert(d)
	}
	return r
}

var (
	defaultRegistry *Registry
	registryOnce    sync.Once
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	registryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds extension-specific errors to the default registry.
func Register(errs ...ErrorData) error {
	return Default().Register(errs...)
}

// Named returns the default registry's entry for a built-in name. Unknown
// names yield the ErrorManagerThrowNameError entry, so misuse still surfaces
// as a registered failure rather than a nil error.
func Named(name string) *Error {
	r := Default()
	if e, ok := r.entries[name]; ok {
		return e
	}
	return r.entries[ThrowNameError]
}

func (r *Registry) insert(d ErrorData) *Error {
	e := &Error{id: r.nextID, name: d.Name, message: d.Message}
	r.nextID--
	r.entries[d.Name] = e
	r.order = append(r.order, d.Name)
	return e
}

// Register appends entries for every unseen name, assigning strictly
// decreasing ids. A name seen before with an identical template is a no-op;
// a different template fails with ErrorManagerCreateNameError and stops
// the remainder of the batch.
func (r *Registry) Register(errs ...ErrorData) error {
	for _, d := range errs {
		if existing, ok := r.entries[d.Name]; ok {
			if existing.message != d.Message {
				return r.entries[CreateNameError].WithDebug("name %q already registered", d.Name)
			}
			continue
		}
		e := r.insert(d)
		numlink.Logger().Debug("registered error",
			zap.String("name", e.name), zap.Int("id", e.id))
	}
	return nil
}

// Find returns the entry for name, or ErrorManagerThrowNameError.
func (r *Registry) Find(name string) (*Error, error) {
	if e, ok := r.entries[name]; ok {
		return e, nil
	}
	return nil, r.entries[ThrowNameError].WithDebug("no error named %q", name)
}

// FindByID returns the entry with the given id, or ErrorManagerThrowIdError.
// The registry stays small, so a linear scan is fine.
func (r *Registry) FindByID(id int) (*Error, error) {
	for _, name := range r.order {
		if e := r.entries[name]; e.id == id {
			return e, nil
		}
	}
	return nil, r.entries[ThrowIdError].WithDebug("no error with id %d", id)
}

// Entries returns all registered errors in registration order.
func (r *Registry) Entries() []*Error {
	out := make([]*Error, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Len returns the number of registered errors.
func (r *Registry) Len() int { return len(r.order) }

// SetExceptionDetailsSymbol overrides the host-side symbol that receives
// failure parameters.
func (r *Registry) SetExceptionDetailsSymbol(s string) { r.symbol = s }

// ExceptionDetailsSymbol returns the current failure-parameters symbol.
func (r *Registry) ExceptionDetailsSymbol() string { return r.symbol }
