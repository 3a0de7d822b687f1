// Package catalog holds the fictional organizational roster of
// organizations, their characters, and the roles characters hold, plus
// the predicates the participant selector asks of it.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/foliosim/threadloom/ident"
	"github.com/foliosim/threadloom/seed"
)

// Organization is one fictional company or firm in the corpus.
type Organization struct {
	ID         ident.ID     `yaml:"id"`
	Slug       string       `yaml:"slug"`
	Name       string       `yaml:"name"`
	Domain     string       `yaml:"domain"`
	Characters []*Character `yaml:"characters"`
}

// Character is one fictional person. Key characters are the designated
// high-importance participants the generator prefers in relevant
// threads.
type Character struct {
	ID      ident.ID    `yaml:"id"`
	Name    string      `yaml:"name"`
	Email   string      `yaml:"email"`
	IsKey   bool        `yaml:"is_key"`
	Current *Assignment `yaml:"current"`
}

// Assignment is a character's current organizational posting.
type Assignment struct {
	RoleID     ident.ID `yaml:"role_id"`
	Title      string   `yaml:"title"`
	Department string   `yaml:"department"`
}

// Catalog is the full roster the generator draws from.
type Catalog struct {
	Organizations []*Organization `yaml:"organizations"`
}

// HasUsableAddress reports whether the character can appear on an email
// at all.
func (c *Character) HasUsableAddress() bool {
	return strings.Contains(c.Email, "@")
}

// Deliverable returns the characters of the organization that have a
// usable address, in roster order.
func (o *Organization) Deliverable() []*Character {
	var out []*Character
	for _, c := range o.Characters {
		if c.HasUsableAddress() {
			out = append(out, c)
		}
	}
	return out
}

// HasKeyCharacter reports whether any deliverable character of the
// organization is a key character.
func (o *Organization) HasKeyCharacter() bool {
	for _, c := range o.Deliverable() {
		if c.IsKey {
			return true
		}
	}
	return false
}

// KeyCharacters returns the deliverable key characters of the
// organization.
func (o *Organization) KeyCharacters() []*Character {
	var out []*Character
	for _, c := range o.Deliverable() {
		if c.IsKey {
			out = append(out, c)
		}
	}
	return out
}

// KeyRoleCount counts distinct roles currently held by key characters
// across the catalog. This drives beat email volume.
func (cat *Catalog) KeyRoleCount() int {
	roles := make(map[ident.ID]bool)
	for _, org := range cat.Organizations {
		for _, c := range org.KeyCharacters() {
			if c.Current != nil {
				roles[c.Current.RoleID] = true
			}
		}
	}
	return len(roles)
}

// LoadFromFile loads a catalog from a YAML roster file. Missing
// identifiers are derived deterministically from slugs and addresses so
// hand-written rosters stay reproducible.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	for _, org := range cat.Organizations {
		if org.Slug == "" {
			return nil, fmt.Errorf("organization %q is missing a slug", org.Name)
		}
		if org.ID.IsNil() {
			org.ID = seed.ID("organization", org.Slug)
		}
		for _, c := range org.Characters {
			if c.Email == "" {
				return nil, fmt.Errorf("character %q in %s has no address", c.Name, org.Slug)
			}
			if c.ID.IsNil() {
				c.ID = seed.ID("character", org.Slug, c.Email)
			}
			if c.Current != nil && c.Current.RoleID.IsNil() {
				c.Current.RoleID = seed.ID("role", org.Slug, c.Current.Department, c.Current.Title)
			}
		}
	}

	return &cat, nil
}
