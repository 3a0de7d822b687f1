// Package narrative holds the storyline object graph the structure
// engine plans against: storylines broken into time-windowed beats,
// beats owning conversation threads, threads owning placeholder
// messages whose content is filled in by a later stage.
package narrative

import (
	"fmt"
	"time"

	"github.com/foliosim/threadloom/ident"
)

// Storyline is one narrative arc across the corpus window.
type Storyline struct {
	ID    ident.ID     `yaml:"id"`
	Slug  string       `yaml:"slug"`
	Title string       `yaml:"title"`
	Beats []*StoryBeat `yaml:"beats"`
}

// StoryBeat is a bounded narrative time window. The narrative stage
// creates beats with their windows; the thread generator fills in
// EmailCount and Threads, after which the beat is not mutated again.
type StoryBeat struct {
	ID          ident.ID       `yaml:"id"`
	StorylineID ident.ID       `yaml:"storyline_id"`
	Title       string         `yaml:"title"`
	Start       time.Time      `yaml:"start"`
	End         time.Time      `yaml:"end"`
	EmailCount  int            `yaml:"email_count"`
	Threads     []*EmailThread `yaml:"threads,omitempty"`
}

// EmailThread is one simulated conversation, owned by its beat.
// Participant lists hold catalog identifiers in selection order;
// membership, not order, is meaningful.
type EmailThread struct {
	ID          ident.ID `yaml:"id"`
	BeatID      ident.ID `yaml:"beat_id"`
	StorylineID ident.ID `yaml:"storyline_id"`

	Scope     Scope     `yaml:"scope"`
	Relevance Relevance `yaml:"relevance"`
	IsHot     bool      `yaml:"is_hot"`

	Organizations []ident.ID `yaml:"organizations,omitempty"`
	Characters    []ident.ID `yaml:"characters,omitempty"`
	Roles         []ident.ID `yaml:"roles,omitempty"`

	Messages []*EmailMessage `yaml:"messages,omitempty"`
}

// EmailMessage is a placeholder slot in a thread. Only the structural
// position exists at planning time; subject and body come later.
type EmailMessage struct {
	ID               ident.ID `yaml:"id"`
	ThreadID         ident.ID `yaml:"thread_id"`
	SequenceInThread int      `yaml:"sequence_in_thread"`
}

// Validate checks thread invariants: a hot thread must be responsive,
// and message sequence numbers must be exactly 0..N-1.
func (t *EmailThread) Validate() error {
	if t.ID.IsNil() {
		return fmt.Errorf("thread is missing an identifier")
	}
	if t.IsHot && t.Relevance != RelevanceResponsive {
		return fmt.Errorf("thread %s is hot but not responsive", t.ID)
	}

	seen := make(map[int]bool, len(t.Messages))
	for _, msg := range t.Messages {
		if msg.SequenceInThread < 0 || msg.SequenceInThread >= len(t.Messages) {
			return fmt.Errorf("thread %s: sequence %d out of range for %d messages", t.ID, msg.SequenceInThread, len(t.Messages))
		}
		if seen[msg.SequenceInThread] {
			return fmt.Errorf("thread %s: duplicate sequence %d", t.ID, msg.SequenceInThread)
		}
		seen[msg.SequenceInThread] = true
	}
	return nil
}

// Validate checks beat invariants before planning: the beat needs an
// identifier, a storyline identifier, and a coherent window.
func (b *StoryBeat) Validate() error {
	if b.ID.IsNil() {
		return fmt.Errorf("beat is missing an identifier")
	}
	if b.StorylineID.IsNil() {
		return fmt.Errorf("beat %s is missing a storyline identifier", b.ID)
	}
	if b.End.Before(b.Start) {
		return fmt.Errorf("beat %s window ends before it starts", b.ID)
	}
	return nil
}
