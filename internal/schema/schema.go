// Package schema holds the declarative attribute tree records are validated
// against, and the validator itself.
package schema

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Node describes one attribute: its type, whether it must be present at the
// top level, and the shape of nested objects or array elements.
type Node struct {
	DataType  string `json:"dataType"`
	Mandatory bool   `json:"mandatory,omitempty"`
	SubType   Schema `json:"subType,omitempty"`
}

// Schema maps attribute names to their nodes.
type Schema map[string]*Node

// Document is a schema file: entity type -> attribute schema.
type Document map[string]Schema

// Mandatory returns the names of attributes flagged mandatory.
func (s Schema) Mandatory() []string {
	var out []string
	for _, name := range sortedKeys(s) {
		if n := s[name]; n != nil && n.Mandatory {
			out = append(out, name)
		}
	}
	return out
}

// Check reports the first unsupported data type found anywhere in the tree.
func (s Schema) Check() error {
	for _, name := range sortedKeys(s) {
		n := s[name]
		if n == nil {
			return fmt.Errorf("attribute %s: missing definition", name)
		}
		if _, ok := ParseKind(n.DataType); !ok {
			return fmt.Errorf("attribute %s: unsupported dataType %q", name, n.DataType)
		}
		if err := n.SubType.Check(); err != nil {
			return fmt.Errorf("attribute %s: %w", name, err)
		}
	}
	return nil
}

// Load reads a schema document from disk and checks every entity's tree.
func Load(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema file read failed: %w", err)
	}
	return Parse(content)
}

// Parse decodes and checks a schema document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema file decode failed: %w", err)
	}
	for _, entity := range sortedKeys(doc) {
		if err := doc[entity].Check(); err != nil {
			return nil, fmt.Errorf("schema %s: %w", entity, err)
		}
	}
	return doc, nil
}
