package threadplan

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/foliosim/threadloom/config"
)

// Placement schedule: attachments cluster on the opening message, thin
// out immediately after, then ramp back up toward the end of the
// thread.
const (
	openingSlotProb = 0.75
	secondSlotProb  = 0.35
	rampBase        = 0.18
	rampSlope       = 0.6

	// Starvation boost: each consecutive skip raises the next slot's
	// placement probability until something lands.
	starvationStep = 0.15
	starvationCap  = 0.45
)

// inlineImageProb is the chance a placed image renders inline rather
// than as a file attachment.
const inlineImageProb = 0.7

// planAttachments fills the attachment plan for every slot. Each kind
// (document, image, voicemail) sweeps the slots independently, so one
// slot can carry several kinds.
func planAttachments(slots []SlotPlan, cfg *config.AttachmentsConfig, rng *rand.Rand) error {
	count := len(slots)

	docTarget := attachmentTarget(cfg.DocumentRatio, count)
	if docTarget > 0 && len(cfg.DocumentTypes) == 0 {
		return fmt.Errorf("document placement requires at least one enabled document type")
	}
	for i, place := range selectSlots(count, docTarget, rng) {
		if !place {
			continue
		}
		slots[i].Attachments.HasDocument = true
		slots[i].Attachments.DocumentType = cfg.DocumentTypes[rng.IntN(len(cfg.DocumentTypes))]
	}

	if cfg.IncludeImages {
		for i, place := range selectSlots(count, attachmentTarget(cfg.ImageRatio, count), rng) {
			if !place {
				continue
			}
			slots[i].Attachments.HasImage = true
			slots[i].Attachments.ImageInline = rng.Float64() < inlineImageProb
		}
	}

	if cfg.IncludeVoicemails {
		for i, place := range selectSlots(count, attachmentTarget(cfg.VoicemailRatio, count), rng) {
			if !place {
				continue
			}
			slots[i].Attachments.HasVoicemail = true
		}
	}

	return nil
}

// attachmentTarget converts a per-message ratio into a whole-thread
// placement count, clamped to the thread length.
func attachmentTarget(ratio float64, count int) int {
	target := int(math.Round(ratio * float64(count)))
	if target < 0 {
		target = 0
	}
	if target > count {
		target = count
	}
	return target
}

// selectSlots picks target placement slots out of count by a forward
// sweep. When the remaining placements equal the slots left, every
// remaining slot is forced; otherwise each slot is drawn at its
// schedule probability plus the current starvation boost. A backward
// fill catches anything still unplaced at the end of the sweep.
func selectSlots(count, target int, rng *rand.Rand) []bool {
	placed := make([]bool, count)
	remaining := target
	boost := 0.0

	for i := 0; i < count && remaining > 0; i++ {
		if remaining == count-i {
			placed[i] = true
			remaining--
			continue
		}

		if rng.Float64() <= placementProbability(i, count)+boost {
			placed[i] = true
			remaining--
			boost = 0
		} else {
			boost = math.Min(boost+starvationStep, starvationCap)
		}
	}

	for i := count - 1; i >= 0 && remaining > 0; i-- {
		if !placed[i] {
			placed[i] = true
			remaining--
		}
	}

	return placed
}

// placementProbability is the base schedule for one slot.
func placementProbability(index, count int) float64 {
	switch index {
	case 0:
		return openingSlotProb
	case 1:
		return secondSlotProb
	default:
		return rampBase + rampSlope*float64(index)/float64(count-1)
	}
}
