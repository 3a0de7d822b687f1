package ident

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestYAMLRoundTrip(t *testing.T) {
	type doc struct {
		ID     ID  `yaml:"id"`
		Parent *ID `yaml:"parent,omitempty"`
	}

	id := MustParse("5a1e8c7b-2f90-4d64-9a3c-1b6f0e84d215")
	out, err := yaml.Marshal(doc{ID: id, Parent: &id})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back doc
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.ID != id {
		t.Errorf("ID = %s, want %s", back.ID, id)
	}
	if back.Parent == nil || *back.Parent != id {
		t.Errorf("Parent = %v, want %s", back.Parent, id)
	}
}

func TestUnmarshal_EmptyMeansNil(t *testing.T) {
	var got struct {
		ID ID `yaml:"id"`
	}
	if err := yaml.Unmarshal([]byte(`id: ""`), &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !got.ID.IsNil() {
		t.Errorf("empty string decoded to %s, want nil", got.ID)
	}

	if err := yaml.Unmarshal([]byte(`{}`), &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !got.ID.IsNil() {
		t.Error("absent field should stay nil")
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	var got struct {
		ID ID `yaml:"id"`
	}
	if err := yaml.Unmarshal([]byte(`id: not-a-uuid`), &got); err == nil {
		t.Error("invalid identifier decoded without error")
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("nope"); err == nil {
		t.Error("Parse accepted garbage")
	}
	id, err := Parse("5a1e8c7b-2f90-4d64-9a3c-1b6f0e84d215")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if id.IsNil() {
		t.Error("parsed identifier is nil")
	}
}
