package carrier

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a carrier table source.
type Format string

// Supported source formats.
const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(path.Ext(p)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, p)
	}
}

// FormatFromContentType infers the format from a MIME type.
func FormatFromContentType(ct string) (Format, error) {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ct)
	}
	switch mediaType {
	case "text/csv":
		return FormatCSV, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, nil
	case "application/json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ct)
	}
}

// Decode parses a carrier table in the given format.
func Decode(r io.Reader, f Format) ([]Entry, error) {
	switch f {
	case FormatCSV:
		return DecodeCSV(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatJSON:
		return DecodeJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// DecodeCSV reads two-column rows: carrier name, format template.
// A leading header row and lines starting with '#' are skipped.
func DecodeCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var entries []Entry
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrMalformedSource, err)
		}
		if line == 0 && isHeader(rec) {
			continue
		}
		entries = append(entries, Entry{Name: rec[0], Template: Template(rec[1])})
	}
	return entries, nil
}

func isHeader(rec []string) bool {
	name := strings.ToLower(strings.TrimSpace(rec[0]))
	tmpl := strings.ToLower(strings.TrimSpace(rec[1]))
	return (name == "carrier" || name == "name") && (tmpl == "template" || tmpl == "format")
}

// DecodeYAML accepts either a mapping of name to template or a sequence of
// {name, template} objects.
func DecodeYAML(r io.Reader) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Join(ErrMalformedSource, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		var m map[string]string
		if err := root.Decode(&m); err != nil {
			return nil, errors.Join(ErrMalformedSource, err)
		}
		return mapEntries(m), nil
	case yaml.SequenceNode:
		var entries []Entry
		if err := root.Decode(&entries); err != nil {
			return nil, errors.Join(ErrMalformedSource, err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: unexpected YAML root", ErrMalformedSource)
	}
}

// DecodeJSON accepts either an object of name to template or an array of
// {"name", "template"} objects.
func DecodeJSON(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrMalformedSource, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '{':
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, errors.Join(ErrMalformedSource, err)
		}
		return mapEntries(m), nil
	case '[':
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, errors.Join(ErrMalformedSource, err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: unexpected JSON root", ErrMalformedSource)
	}
}

// EncodeCSV writes entries with a header row in the layout DecodeCSV reads.
func EncodeCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"carrier", "template"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Name, string(e.Template)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
