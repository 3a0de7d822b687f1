package narrative

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/foliosim/threadloom/seed"
)

// LoadStoryline loads a storyline beat sheet from a YAML file. Missing
// identifiers are derived deterministically from the storyline slug and
// beat position, so a hand-written beat sheet stays reproducible without
// the author minting UUIDs.
func LoadStoryline(path string) (*Storyline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storyline file: %w", err)
	}

	var story Storyline
	if err := yaml.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("parse storyline file: %w", err)
	}

	if story.Slug == "" {
		return nil, fmt.Errorf("storyline slug is required")
	}
	if story.ID.IsNil() {
		story.ID = seed.ID("storyline", story.Slug)
	}

	for i, beat := range story.Beats {
		if beat.ID.IsNil() {
			beat.ID = seed.ID("story-beat", story.Slug, fmt.Sprint(i))
		}
		if beat.StorylineID.IsNil() {
			beat.StorylineID = story.ID
		}
		if err := beat.Validate(); err != nil {
			return nil, fmt.Errorf("beat %d: %w", i, err)
		}
	}

	return &story, nil
}
