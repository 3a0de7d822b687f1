// Package threadplan derives the full structural plan for one email
// thread: reply/forward topology, branch identities, message timing,
// narrative phase, and attachment placement. Plans are transient: they
// are produced for and consumed by the content-generation stage within
// a single call, never persisted.
package threadplan

import (
	"time"

	"github.com/foliosim/threadloom/ident"
)

// Plan is the fully-specified structural plan for one thread.
type Plan struct {
	ThreadID      ident.ID   `yaml:"thread_id"`
	RootMessageID ident.ID   `yaml:"root_message_id"`
	Slots         []SlotPlan `yaml:"slots"`
}

// SlotPlan describes one message slot. ParentID is nil only for the
// root slot at index 0.
type SlotPlan struct {
	Index       int            `yaml:"index"`
	MessageID   ident.ID       `yaml:"message_id"`
	ParentID    *ident.ID      `yaml:"parent_id,omitempty"`
	RootID      ident.ID       `yaml:"root_id"`
	BranchID    ident.ID       `yaml:"branch_id"`
	Date        time.Time      `yaml:"date"`
	Phase       Phase          `yaml:"phase"`
	Intent      Intent         `yaml:"intent"`
	Attachments AttachmentPlan `yaml:"attachments"`
}

// AttachmentPlan records which attachment kinds a slot carries. Kinds
// are independent; a slot may carry several.
type AttachmentPlan struct {
	HasDocument  bool   `yaml:"has_document"`
	DocumentType string `yaml:"document_type,omitempty"`
	HasImage     bool   `yaml:"has_image"`
	ImageInline  bool   `yaml:"image_inline"`
	HasVoicemail bool   `yaml:"has_voicemail"`
}

// Intent is how a message enters its thread.
type Intent string

const (
	// IntentNew opens a thread.
	IntentNew Intent = "new"

	// IntentReply continues a thread in place.
	IntentReply Intent = "reply"

	// IntentForward carries a thread to a new footing.
	IntentForward Intent = "forward"
)

// Phase tags where a message falls in the narrative arc of its thread.
type Phase string

const (
	// PhaseSingle is the only message of a one-message thread.
	PhaseSingle Phase = "SINGLE"

	// PhaseBeginning covers the opening third of a thread.
	PhaseBeginning Phase = "BEGINNING"

	// PhaseMiddle covers the working middle of a thread.
	PhaseMiddle Phase = "MIDDLE"

	// PhaseLate covers the closing third of a thread.
	PhaseLate Phase = "LATE"
)

// Directive returns the fixed tone guidance the content stage receives
// for this phase.
func (p Phase) Directive() string {
	switch p {
	case PhaseSingle:
		return "Self-contained exchange; raise and settle the matter in a single note."
	case PhaseBeginning:
		return "Opening moves; introduce the matter and set expectations."
	case PhaseMiddle:
		return "Working the problem; details, pushback, and follow-ups."
	case PhaseLate:
		return "Winding down; decisions, escalations, or loose ends."
	default:
		return ""
	}
}

// Phase band boundaries as position fractions within the thread.
const (
	beginningBand = 0.34
	lateBand      = 0.66
)

// phaseFor maps a slot index to its narrative phase.
func phaseFor(index, count int) Phase {
	if count == 1 {
		return PhaseSingle
	}
	frac := float64(index) / float64(count-1)
	switch {
	case frac < beginningBand:
		return PhaseBeginning
	case frac > lateBand:
		return PhaseLate
	default:
		return PhaseMiddle
	}
}
