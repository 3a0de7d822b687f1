// Package config provides configuration loading and management for
// threadloom.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete threadloom configuration
type Config struct {
	Generation  GenerationConfig  `yaml:"generation"`
	Volume      VolumeConfig      `yaml:"volume"`
	Attachments AttachmentsConfig `yaml:"attachments"`
}

// GenerationConfig configures corpus-wide generation settings
type GenerationConfig struct {
	// Seed is the corpus generation seed; the same seed replays the
	// same corpus structure
	Seed int64 `yaml:"seed"`
	// CatalogPath is the organizational roster file
	CatalogPath string `yaml:"catalog_path"`
	// StorylinePath is the storyline beat sheet file
	StorylinePath string `yaml:"storyline_path"`
}

// VolumeConfig configures email volume targets
type VolumeConfig struct {
	// EmailsPerRoleDay is the average emails a key role generates per
	// day of beat window (default: 0.5)
	EmailsPerRoleDay float64 `yaml:"emails_per_role_day"`
}

// AttachmentsConfig configures attachment placement targets
type AttachmentsConfig struct {
	// DocumentRatio is the fraction of a thread's messages carrying a
	// document (0.0-1.0, default: 0.18)
	DocumentRatio float64 `yaml:"document_ratio"`
	// ImageRatio is the fraction of messages carrying an image
	// (default: 0.08)
	ImageRatio float64 `yaml:"image_ratio"`
	// VoicemailRatio is the fraction of messages carrying a voicemail
	// (default: 0.03)
	VoicemailRatio float64 `yaml:"voicemail_ratio"`
	// DocumentTypes is the list of enabled document types drawn from
	// when a document is placed
	DocumentTypes []string `yaml:"document_types"`
	// IncludeImages toggles image attachments
	IncludeImages bool `yaml:"include_images"`
	// IncludeVoicemails toggles voicemail attachments
	IncludeVoicemails bool `yaml:"include_voicemails"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Seed:          1,
			CatalogPath:   "catalog.yaml",
			StorylinePath: "storyline.yaml",
		},
		Volume: VolumeConfig{
			EmailsPerRoleDay: 0.5,
		},
		Attachments: AttachmentsConfig{
			DocumentRatio:     0.18,
			ImageRatio:        0.08,
			VoicemailRatio:    0.03,
			DocumentTypes:     []string{"report", "memo", "contract", "invoice", "spreadsheet", "presentation"},
			IncludeImages:     true,
			IncludeVoicemails: true,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Generation.Seed == 0 {
		return fmt.Errorf("generation.seed is required")
	}
	if c.Volume.EmailsPerRoleDay <= 0 {
		return fmt.Errorf("volume.emails_per_role_day must be positive")
	}
	for _, pair := range []struct {
		name  string
		value float64
	}{
		{"attachments.document_ratio", c.Attachments.DocumentRatio},
		{"attachments.image_ratio", c.Attachments.ImageRatio},
		{"attachments.voicemail_ratio", c.Attachments.VoicemailRatio},
	} {
		if pair.value < 0 || pair.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", pair.name)
		}
	}
	if len(c.Attachments.DocumentTypes) == 0 && c.Attachments.DocumentRatio > 0 {
		return fmt.Errorf("attachments.document_types is required when attachments.document_ratio is set")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Generation
	if other.Generation.Seed != 0 {
		c.Generation.Seed = other.Generation.Seed
	}
	if other.Generation.CatalogPath != "" {
		c.Generation.CatalogPath = other.Generation.CatalogPath
	}
	if other.Generation.StorylinePath != "" {
		c.Generation.StorylinePath = other.Generation.StorylinePath
	}

	// Volume
	if other.Volume.EmailsPerRoleDay != 0 {
		c.Volume.EmailsPerRoleDay = other.Volume.EmailsPerRoleDay
	}

	// Attachments
	if other.Attachments.DocumentRatio != 0 {
		c.Attachments.DocumentRatio = other.Attachments.DocumentRatio
	}
	if other.Attachments.ImageRatio != 0 {
		c.Attachments.ImageRatio = other.Attachments.ImageRatio
	}
	if other.Attachments.VoicemailRatio != 0 {
		c.Attachments.VoicemailRatio = other.Attachments.VoicemailRatio
	}
	if len(other.Attachments.DocumentTypes) > 0 {
		c.Attachments.DocumentTypes = other.Attachments.DocumentTypes
	}
}
