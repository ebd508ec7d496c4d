package carrier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
)

// Reader returns a loader decoding data in the given format.
// The data is captured once so the loader can be called repeatedly.
func Reader(r io.Reader, f Format) (Loader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("carrier: read source: %w", err)
	}
	return LoaderFunc(func(context.Context) ([]Entry, error) {
		return Decode(bytes.NewReader(data), f)
	}), nil
}

// File returns a loader reading path from fsys on every Load.
// The format is inferred from the file extension.
func File(fsys fs.FS, path string) Loader {
	return LoaderFunc(func(context.Context) ([]Entry, error) {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("carrier: read %s: %w", path, err)
		}
		return Decode(bytes.NewReader(data), f)
	})
}
