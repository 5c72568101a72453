package semantic

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

// HeaderSeparator separates the values of a single header field on the wire.
// A single value may never contain it.
const HeaderSeparator = ";"

// Headers is a case-insensitive multi-valued header map.
// Names keep the insertion order of their first appearance.
type Headers struct {
	fields map[string]*field
	order  []string
}

type field struct {
	name   string // spelling of the first insertion
	values []string
}

func NewHeaders() *Headers {
	return &Headers{fields: make(map[string]*field)}
}

// HeadersFrom validates and copies every value of initial.
// Name order follows map iteration, so callers that care about order should use [Headers.Append].
func HeadersFrom(initial map[string][]string) (*Headers, error) {
	h := NewHeaders()
	for name, values := range initial {
		for _, v := range values {
			if err := h.Append(name, v); err != nil {
				return nil, err
			}
		}
	}
	return h, nil
}

// Add creates a header with a single value.
// It fails with [ErrInvalidOperation] if the name already exists.
func (h *Headers) Add(name, value string) error {
	if err := validateField(name, value); err != nil {
		return err
	}

	key := canonical(name)
	if _, ok := h.fields[key]; ok {
		return errors.Wrapf(ErrInvalidOperation, "header %q is already defined", name)
	}

	h.insert(key, name, value)
	return nil
}

// Append adds value to the end of the values of name, creating the header if absent.
func (h *Headers) Append(name, value string) error {
	if err := validateField(name, value); err != nil {
		return err
	}

	key := canonical(name)
	if f, ok := h.fields[key]; ok {
		f.values = append(f.values, value)
		return nil
	}

	h.insert(key, name, value)
	return nil
}

func (h *Headers) insert(key, name, value string) {
	h.fields[key] = &field{name: name, values: []string{value}}
	h.order = append(h.order, key)
}

// Get assumes the field is a singleton field.
// For list-based field, use [Headers.Values].
func (h *Headers) Get(name string) (value string, ok bool) {
	f, ok := h.fields[canonical(name)]
	if !ok || len(f.values) == 0 {
		return "", false
	}
	return f.values[0], true
}

func (h *Headers) Values(name string) (values []string, ok bool) {
	f, ok := h.fields[canonical(name)]
	if !ok {
		return nil, false
	}

	values = make([]string, len(f.values))
	copy(values, f.values)

	return values, true
}

func (h *Headers) Has(name string) bool {
	_, ok := h.fields[canonical(name)]
	return ok
}

func (h *Headers) Del(name string) {
	key := canonical(name)
	if _, ok := h.fields[key]; !ok {
		return
	}

	delete(h.fields, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *Headers) Len() int { return len(h.order) }

func (h *Headers) Names() []string {
	names := make([]string, 0, len(h.order))
	for _, key := range h.order {
		names = append(names, h.fields[key].name)
	}
	return names
}

// Range calls fn for every header in insertion order until fn returns false.
// The values slice must not be retained or modified.
func (h *Headers) Range(fn func(name string, values []string) bool) {
	for _, key := range h.order {
		f := h.fields[key]
		if !fn(f.name, f.values) {
			return
		}
	}
}

// Fields returns all the key-values in the header.
func (h *Headers) Fields() map[string][]string {
	clone := make(map[string][]string, len(h.fields))
	for _, f := range h.fields {
		values := make([]string, len(f.values))
		copy(values, f.values)

		clone[f.name] = values
	}
	return clone
}

func (h *Headers) Clone() *Headers {
	clone := &Headers{
		fields: make(map[string]*field, len(h.fields)),
		order:  make([]string, len(h.order)),
	}
	copy(clone.order, h.order)

	for key, f := range h.fields {
		values := make([]string, len(f.values))
		copy(values, f.values)

		clone.fields[key] = &field{name: f.name, values: values}
	}
	return clone
}

// Join returns values of a header joined by "; ".
func Join(values []string) string {
	return strings.Join(values, HeaderSeparator+" ")
}

func canonical(name string) string {
	return strings.ToLower(name)
}

func validateField(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return errors.Wrapf(ErrValidation, "invalid header name %q", name)
	}
	if strings.Contains(value, HeaderSeparator) {
		return errors.Wrapf(ErrValidation, "header value %q cannot include a header separator (%q)", value, HeaderSeparator)
	}
	return nil
}
