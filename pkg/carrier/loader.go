package carrier

import (
	"context"
	"maps"
	"slices"
)

// Loader produces the rows of a carrier table.
// Implementations may read from memory, files, HTTP or object storage.
type Loader interface {
	Load(ctx context.Context) ([]Entry, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]Entry, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context) ([]Entry, error) {
	return f(ctx)
}

// Build runs the loader once and validates the result into a Table.
func Build(ctx context.Context, l Loader) (*Table, error) {
	if l == nil {
		return nil, ErrLoaderRequired
	}
	entries, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewTable(entries...)
}

// Static returns a loader serving a fixed in-memory table.
func Static(m map[string]string) Loader {
	entries := mapEntries(m)
	return LoaderFunc(func(context.Context) ([]Entry, error) {
		return slices.Clone(entries), nil
	})
}

func mapEntries(m map[string]string) []Entry {
	entries := make([]Entry, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, Entry{Name: name, Template: Template(m[name])})
	}
	return entries
}
