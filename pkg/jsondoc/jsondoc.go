// Package jsondoc loads the theme's JSON configuration documents. Shopify
// settings files may carry a leading /* ... */ comment block before the
// JSON payload; the loader strips it and tags the parsed document with its
// top-level shape so callers fail early on a shape mismatch instead of
// failing downstream on a type assertion.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Kind identifies the top-level shape of a loaded document
type Kind string

const (
	// KindSchema is an array of section objects (settings_schema.json)
	KindSchema Kind = "schema"
	// KindFlat is a flat object keyed by string (locales, settings_data.json)
	KindFlat Kind = "flat"
)

// Document is a parsed JSON document with its top-level shape tagged
type Document struct {
	kind   Kind
	schema []map[string]interface{}
	flat   map[string]interface{}
}

// Kind returns the document's top-level shape
func (d *Document) Kind() Kind {
	return d.kind
}

// Schema returns the document as a list of section mappings
func (d *Document) Schema() ([]map[string]interface{}, error) {
	if d.kind != KindSchema {
		return nil, &ShapeMismatchError{Want: KindSchema, Got: d.kind}
	}
	return d.schema, nil
}

// Flat returns the document as a flat key-value mapping
func (d *Document) Flat() (map[string]interface{}, error) {
	if d.kind != KindFlat {
		return nil, &ShapeMismatchError{Want: KindFlat, Got: d.kind}
	}
	return d.flat, nil
}

// ParseError indicates a document failed to parse as JSON after
// comment-stripping
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid JSON document: %v", e.Err)
	}
	return fmt.Sprintf("invalid JSON document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeMismatchError indicates a caller requested the wrong document shape
type ShapeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("document shape mismatch: want %s, got %s", e.Want, e.Got)
}

// StripComment removes a leading /* ... */ block before the JSON payload.
// Only a comment block at the very start of the content is stripped; an
// unterminated opener leaves the content untouched and the subsequent
// parse fails.
func StripComment(data []byte) []byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("/*")) {
		return data
	}
	end := bytes.Index(trimmed, []byte("*/"))
	if end == -1 {
		return data
	}
	return bytes.TrimSpace(trimmed[end+2:])
}

// Parse parses raw document bytes into a shape-tagged Document
func Parse(data []byte) (*Document, error) {
	var value interface{}
	if err := json.Unmarshal(StripComment(data), &value); err != nil {
		return nil, &ParseError{Err: err}
	}

	switch v := value.(type) {
	case []interface{}:
		// Non-object elements carry no name or settings and are skipped,
		// matching the comparator's tolerance for malformed entries.
		sections := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if section, ok := item.(map[string]interface{}); ok {
				sections = append(sections, section)
			}
		}
		return &Document{kind: KindSchema, schema: sections}, nil
	case map[string]interface{}:
		return &Document{kind: KindFlat, flat: v}, nil
	default:
		return nil, &ParseError{Err: fmt.Errorf("unexpected top-level shape %T", value)}
	}
}

// Load reads and parses a document from disk
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// LoadSchema loads a document and requires the schema shape
func LoadSchema(path string) ([]map[string]interface{}, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Schema()
}

// LoadFlat loads a document and requires the flat shape
func LoadFlat(path string) (map[string]interface{}, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Flat()
}
