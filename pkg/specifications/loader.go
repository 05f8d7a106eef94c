package specifications

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Specifications map[string]Specification `yaml:"specifications"`
}

// LoadYAML parses a specification document. JSON documents are accepted as
// well since they are valid YAML.
func LoadYAML(r io.Reader) (map[string]Specification, error) {
	if r == nil {
		return nil, ErrEmptyDocument
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("specifications: read: %w", err)
	}
	return parseDocument(data, "<reader>")
}

// LoadFS walks fsys and merges every JSON/YAML specification file it finds.
// A country defined in more than one file is an error.
func LoadFS(fsys fs.FS) (map[string]Specification, error) {
	out := make(map[string]Specification)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("specifications: read %s: %w", path, err)
		}
		specs, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		for country, spec := range specs {
			if _, exists := out[country]; exists {
				return fmt.Errorf("specifications: duplicate country %q (file %s)", country, path)
			}
			out[country] = spec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks that the schema of every entry references each field once.
func Validate(specs map[string]Specification) error {
	for country, spec := range specs {
		seen := make(map[string]struct{})
		for _, field := range spec.Schema.Flatten() {
			if strings.TrimSpace(field) == "" {
				return fmt.Errorf("%w: country %q has an empty field", ErrInvalidEntry, country)
			}
			if _, exists := seen[field]; exists {
				return fmt.Errorf("%w: country %q field %q", ErrDuplicateField, country, field)
			}
			seen[field] = struct{}{}
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (map[string]Specification, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("specifications: parse %s: %w", source, err)
	}

	out := make(map[string]Specification, len(doc.Specifications))
	for country, spec := range doc.Specifications {
		key := normalizeCountry(country)
		if key == "" {
			return nil, fmt.Errorf("specifications: file %s defines an empty country code", source)
		}
		out[key] = spec
	}
	if err := Validate(out); err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, source)
	}
	return out, nil
}

// UnmarshalYAML accepts a bare field name or a list of columns, where each
// column is a name, a [name, width] pair or a {field, width} mapping.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.Field = strings.TrimSpace(node.Value)
		e.Group = nil
		return nil
	case yaml.SequenceNode:
		group := make([]Column, 0, len(node.Content))
		for _, child := range node.Content {
			col, err := decodeColumn(child)
			if err != nil {
				return err
			}
			group = append(group, col)
		}
		if len(group) == 0 {
			return fmt.Errorf("%w: empty group at line %d", ErrInvalidEntry, node.Line)
		}
		e.Field = ""
		e.Group = group
		return nil
	default:
		return fmt.Errorf("%w: unexpected node at line %d", ErrInvalidEntry, node.Line)
	}
}

func decodeColumn(node *yaml.Node) (Column, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Column{Field: strings.TrimSpace(node.Value)}, nil
	case yaml.MappingNode:
		var col Column
		if err := node.Decode(&col); err != nil {
			return Column{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
		col.Field = strings.TrimSpace(col.Field)
		return col, nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 2 {
			return Column{}, fmt.Errorf("%w: column at line %d needs [field, width]", ErrInvalidEntry, node.Line)
		}
		col := Column{Field: strings.TrimSpace(node.Content[0].Value)}
		if len(node.Content) == 2 {
			width, err := strconv.Atoi(strings.TrimSpace(node.Content[1].Value))
			if err != nil {
				return Column{}, fmt.Errorf("%w: width at line %d: %v", ErrInvalidEntry, node.Line, err)
			}
			col.Width = width
		}
		return col, nil
	default:
		return Column{}, fmt.Errorf("%w: unexpected column at line %d", ErrInvalidEntry, node.Line)
	}
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
