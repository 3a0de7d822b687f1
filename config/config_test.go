package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero seed", func(c *Config) { c.Generation.Seed = 0 }},
		{"zero volume", func(c *Config) { c.Volume.EmailsPerRoleDay = 0 }},
		{"negative document ratio", func(c *Config) { c.Attachments.DocumentRatio = -0.1 }},
		{"image ratio above one", func(c *Config) { c.Attachments.ImageRatio = 1.1 }},
		{"voicemail ratio above one", func(c *Config) { c.Attachments.VoicemailRatio = 2 }},
		{"no document types", func(c *Config) { c.Attachments.DocumentTypes = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `generation:
  seed: 12345
attachments:
  document_ratio: 0.3
  document_types: [memo]
`
	path := filepath.Join(t.TempDir(), "threadloom.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Generation.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", cfg.Generation.Seed)
	}
	if cfg.Attachments.DocumentRatio != 0.3 {
		t.Errorf("DocumentRatio = %g, want 0.3", cfg.Attachments.DocumentRatio)
	}
	if len(cfg.Attachments.DocumentTypes) != 1 || cfg.Attachments.DocumentTypes[0] != "memo" {
		t.Errorf("DocumentTypes = %v, want [memo]", cfg.Attachments.DocumentTypes)
	}
	// Unset values keep their defaults.
	if cfg.Volume.EmailsPerRoleDay != 0.5 {
		t.Errorf("EmailsPerRoleDay = %g, want default 0.5", cfg.Volume.EmailsPerRoleDay)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Merge(&Config{
		Generation:  GenerationConfig{Seed: 99},
		Attachments: AttachmentsConfig{VoicemailRatio: 0.1},
	})

	if base.Generation.Seed != 99 {
		t.Errorf("Seed = %d, want 99", base.Generation.Seed)
	}
	if base.Attachments.VoicemailRatio != 0.1 {
		t.Errorf("VoicemailRatio = %g, want 0.1", base.Attachments.VoicemailRatio)
	}
	// Zero values in the overlay do not clobber defaults.
	if base.Volume.EmailsPerRoleDay != 0.5 {
		t.Errorf("EmailsPerRoleDay = %g, want default 0.5", base.Volume.EmailsPerRoleDay)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "threadloom.yaml")

	cfg := DefaultConfig()
	cfg.Generation.Seed = 777
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Generation.Seed != 777 {
		t.Errorf("Seed = %d, want 777", loaded.Generation.Seed)
	}
}
