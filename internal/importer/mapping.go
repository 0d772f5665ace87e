package importer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownField is returned for names outside the fixed Field set.
	ErrUnknownField = errors.New("unknown field")
	// ErrMappingIncomplete is returned when a required Field is unmapped.
	ErrMappingIncomplete = errors.New("mapping incomplete")
)

// Mapping assigns a CSV header to each Field. An empty header means unmapped.
type Mapping struct {
	headers map[Field]string
}

// NewMapping returns a Mapping with every field unmapped.
func NewMapping() Mapping {
	return Mapping{headers: make(map[Field]string, len(Fields))}
}

// Get returns the header for f, or "" when unmapped.
func (m Mapping) Get(f Field) string {
	return m.headers[f]
}

// Set assigns header to f. An empty header clears it.
func (m *Mapping) Set(f Field, header string) {
	if m.headers == nil {
		m.headers = make(map[Field]string, len(Fields))
	}
	if header == "" {
		delete(m.headers, f)
		return
	}
	m.headers[f] = header
}

// Clear unmaps f.
func (m *Mapping) Clear(f Field) { m.Set(f, "") }

// IsMapped reports whether f has a header.
func (m Mapping) IsMapped(f Field) bool {
	return m.headers[f] != ""
}

// IsValid reports whether every required field is mapped.
func (m Mapping) IsValid() bool {
	return len(m.Missing()) == 0
}

// Missing returns the required fields that are unmapped.
func (m Mapping) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if f.Required() && !m.IsMapped(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Check returns ErrMappingIncomplete naming the missing fields, or nil.
func (m Mapping) Check() error {
	missing := m.Missing()
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	return fmt.Errorf("%w: %s not mapped", ErrMappingIncomplete, strings.Join(names, ", "))
}

// Clone returns an independent copy.
func (m Mapping) Clone() Mapping {
	c := NewMapping()
	for f, h := range m.headers {
		c.headers[f] = h
	}
	return c
}

// Equal reports whether both mappings assign the same headers.
func (m Mapping) Equal(o Mapping) bool {
	for _, f := range Fields {
		if m.Get(f) != o.Get(f) {
			return false
		}
	}
	return true
}

// ApplyOverrides applies "field=Header" assignments on top of m. "field="
// clears the field. Headers must exist in headers. m is left untouched when
// any override is rejected.
func (m *Mapping) ApplyOverrides(headers []string, overrides []string) error {
	c := m.Clone()
	for _, o := range overrides {
		name, header, ok := strings.Cut(o, "=")
		if !ok {
			return fmt.Errorf("invalid mapping %q: expected field=header", o)
		}
		f, err := ParseField(name)
		if err != nil {
			return err
		}
		header = strings.TrimSpace(header)
		if header != "" && !slices.Contains(headers, header) {
			return fmt.Errorf("mapping %s: no column named %q", f, header)
		}
		c.Set(f, header)
	}
	*m = c
	return nil
}

// String renders the mapping as "amount=Amount date=Date ...".
func (m Mapping) String() string {
	parts := make([]string, 0, len(Fields))
	for _, f := range Fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f, m.Get(f)))
	}
	return strings.Join(parts, " ")
}
