// Package ident provides the identifier type used across the corpus
// object graph: a UUID that reads and writes as its canonical string in
// YAML, so rosters, beat sheets, and plan files stay human-readable.
package ident

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ID is a 128-bit identifier. The zero value is the nil identifier.
type ID struct {
	uuid.UUID
}

// Nil is the zero identifier.
var Nil = ID{}

// New returns a random identifier.
func New() ID {
	return ID{uuid.New()}
}

// FromUUID wraps a raw UUID.
func FromUUID(u uuid.UUID) ID {
	return ID{u}
}

// Parse parses a canonical UUID string.
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("parse identifier: %w", err)
	}
	return ID{u}, nil
}

// MustParse parses a canonical UUID string and panics on failure. For
// constants and tests only.
func MustParse(s string) ID {
	return ID{uuid.MustParse(s)}
}

// IsNil reports whether the identifier is unset.
func (id ID) IsNil() bool {
	return id.UUID == uuid.Nil
}

// MarshalYAML encodes the identifier as its canonical string. The nil
// identifier encodes as the empty string.
func (id ID) MarshalYAML() (any, error) {
	if id.IsNil() {
		return "", nil
	}
	return id.String(), nil
}

// UnmarshalYAML decodes a canonical string; empty and absent both mean
// nil so loaders can derive missing identifiers.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*id = Nil
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
