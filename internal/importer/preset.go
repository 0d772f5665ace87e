package importer

import (
	"slices"
	"strings"
)

// Preset is a known column layout for a bank export.
type Preset struct {
	Name      string
	Delimiter rune
	Columns   map[Field]string
}

// Mapping returns the preset's columns as a Mapping.
func (p Preset) Mapping() Mapping {
	m := NewMapping()
	for f, h := range p.Columns {
		m.Set(f, h)
	}
	return m
}

// Matches reports whether every preset column is among headers.
func (p Preset) Matches(headers []string) bool {
	for _, h := range p.Columns {
		if !slices.Contains(headers, h) {
			return false
		}
	}
	return len(p.Columns) > 0
}

// Registry holds named presets.
type Registry struct {
	presets map[string]Preset
	order   []string
}

// NewRegistry creates an empty preset registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// Register adds a preset. Panics on duplicate name.
func (r *Registry) Register(p Preset) {
	key := strings.ToLower(p.Name)
	if _, ok := r.presets[key]; ok {
		panic("duplicate preset: " + key)
	}
	r.presets[key] = p
	r.order = append(r.order, key)
}

// Get returns the preset for name.
func (r *Registry) Get(name string) (Preset, bool) {
	p, ok := r.presets[strings.ToLower(name)]
	return p, ok
}

// Names returns preset names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Match returns the first registered preset whose columns all appear in headers.
func (r *Registry) Match(headers []string) (Preset, bool) {
	for _, key := range r.order {
		if p := r.presets[key]; p.Matches(headers) {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultRegistry returns a registry with all built-in presets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Preset{
		Name:      "chase",
		Delimiter: ',',
		Columns: map[Field]string{
			FieldDate:        "Posting Date",
			FieldAmount:      "Amount",
			FieldDescription: "Description",
			FieldType:        "Details",
		},
	})
	r.Register(Preset{
		Name:      "mint",
		Delimiter: ',',
		Columns: map[Field]string{
			FieldDate:        "Date",
			FieldAmount:      "Amount",
			FieldDescription: "Description",
			FieldAccount:     "Account Name",
			FieldCategory:    "Category",
			FieldType:        "Transaction Type",
		},
	})
	return r
}
