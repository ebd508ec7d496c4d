package carrier

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is a single row of a carrier table source.
type Entry struct {
	Name     string   `json:"name" yaml:"name"`
	Template Template `json:"template" yaml:"template"`
}

// cases.Caser keeps state, so Normalize builds one per call.
var upperTag = language.Und

// Normalize returns the lookup key for a carrier name: trimmed and
// uppercased without locale-specific rules.
func Normalize(name string) string {
	return cases.Upper(upperTag).String(strings.TrimSpace(name))
}

// Table is an immutable mapping from normalized carrier name to template.
// It is safe for concurrent use.
type Table struct {
	templates map[string]Template
}

// NewTable validates and normalizes the entries into a Table.
func NewTable(entries ...Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	templates := make(map[string]Template, len(entries))
	for i, e := range entries {
		key := Normalize(e.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrEmptyCarrierName, i)
		}
		tmpl := Template(strings.TrimSpace(string(e.Template)))
		if err := tmpl.Validate(); err != nil {
			return nil, fmt.Errorf("carrier %s: %w", key, err)
		}
		if _, ok := templates[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCarrier, key)
		}
		templates[key] = tmpl
	}

	return &Table{templates: templates}, nil
}

// FromMap builds a Table from a name to template map.
func FromMap(m map[string]string) (*Table, error) {
	return NewTable(mapEntries(m)...)
}

// MustTable is like FromMap but panics on error.
// Use for tables declared as literals.
func MustTable(m map[string]string) *Table {
	t, err := FromMap(m)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup resolves a carrier name case-insensitively.
func (t *Table) Lookup(name string) (Template, bool) {
	tmpl, ok := t.templates[Normalize(name)]
	return tmpl, ok
}

// Destination formats the gateway address for a phone number on the named
// carrier. Returns ErrUnknownCarrier if the carrier is not in the table.
func (t *Table) Destination(name string, phoneNumber int64) (string, error) {
	tmpl, ok := t.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCarrier, name)
	}
	return tmpl.Format(phoneNumber), nil
}

// Names returns the normalized carrier names in sorted order.
// The returned slice is owned by the caller.
func (t *Table) Names() []string {
	return slices.Sorted(maps.Keys(t.templates))
}

// Entries returns the table rows sorted by name.
func (t *Table) Entries() []Entry {
	names := t.Names()
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Name: name, Template: t.templates[name]}
	}
	return entries
}

// Len returns the number of carriers.
func (t *Table) Len() int {
	return len(t.templates)
}
