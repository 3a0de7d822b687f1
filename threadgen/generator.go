// Package threadgen turns storyline beats into classified, staffed
// conversation threads. It owns the per-beat volume and partitioning
// pass, relevance classification, the coverage repair pass, and
// participant selection.
package threadgen

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"

	"github.com/foliosim/threadloom/config"
	"github.com/foliosim/threadloom/dates"
	"github.com/foliosim/threadloom/narrative"
	"github.com/foliosim/threadloom/relevance"
	"github.com/foliosim/threadloom/seed"
)

// internalScopeProb is the chance a thread stays inside one
// organization.
const internalScopeProb = 0.7

// StorylineStream derives the random stream for one storyline's
// generation pass. Each storyline planned under the same seed gets its
// own independent stream, so storylines can be planned concurrently
// without sharing a generator.
func StorylineStream(generationSeed int64, storylineSlug string) *rand.Rand {
	return seed.Stream("storyline-threads", strconv.FormatInt(generationSeed, 10), storylineSlug)
}

// Generator plans thread structure for storyline beats.
type Generator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a generator. A nil logger falls back to slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// PlanThreadsForBeats fills every beat with classified threads and
// placeholder messages, then runs the coverage repair pass. Beats are
// mutated in place and are not touched again after this call.
func (g *Generator) PlanThreadsForBeats(beats []*narrative.StoryBeat, keyRoleCount int, rng *rand.Rand) error {
	if g.cfg == nil {
		return fmt.Errorf("config is required")
	}
	if keyRoleCount <= 0 {
		return fmt.Errorf("key role count must be positive, got %d", keyRoleCount)
	}
	if rng == nil {
		return fmt.Errorf("random stream is required")
	}

	for i, beat := range beats {
		if err := beat.Validate(); err != nil {
			return fmt.Errorf("beat %d: %w", i, err)
		}

		volume, err := dates.TargetEmailVolume(beat.Start, beat.End, keyRoleCount, g.cfg.Volume.EmailsPerRoleDay)
		if err != nil {
			return fmt.Errorf("beat %d: %w", i, err)
		}
		beat.EmailCount = volume

		sizes, err := dates.PartitionEmailCounts(volume, rng)
		if err != nil {
			return fmt.Errorf("beat %d: %w", i, err)
		}

		beat.Threads = make([]*narrative.EmailThread, 0, len(sizes))
		for ordinal, size := range sizes {
			thread, err := g.newThread(beat, ordinal, size, rng)
			if err != nil {
				return fmt.Errorf("beat %d thread %d: %w", i, ordinal, err)
			}
			beat.Threads = append(beat.Threads, thread)
		}

		g.logger.Debug("Planned beat",
			slog.String("beat_id", beat.ID.String()),
			slog.Int("email_count", volume),
			slog.Int("threads", len(beat.Threads)))
	}

	repairCoverage(beats, rng)
	return nil
}

// newThread creates one classified thread with its placeholder
// messages. Thread and message identifiers are derived, not random, so
// the structure planner and the content stage see the same identities
// on every rerun.
func (g *Generator) newThread(beat *narrative.StoryBeat, ordinal, size int, rng *rand.Rand) (*narrative.EmailThread, error) {
	threadID := seed.ID("email-thread", beat.StorylineID.String(), beat.ID.String(), strconv.Itoa(ordinal))

	scope := narrative.ScopeExternal
	if rng.Float64() < internalScopeProb {
		scope = narrative.ScopeInternal
	}

	class, err := relevance.Classify(size, rng.Float64(), rng.Float64())
	if err != nil {
		return nil, err
	}

	rel := narrative.RelevanceNonResponsive
	if class.Responsive {
		rel = narrative.RelevanceResponsive
	}

	thread := &narrative.EmailThread{
		ID:          threadID,
		BeatID:      beat.ID,
		StorylineID: beat.StorylineID,
		Scope:       scope,
		Relevance:   rel,
		IsHot:       class.Hot,
	}
	for i := 0; i < size; i++ {
		thread.Messages = append(thread.Messages, &narrative.EmailMessage{
			ID:               seed.ID("email-message", threadID.String(), strconv.Itoa(i)),
			ThreadID:         threadID,
			SequenceInThread: i,
		})
	}
	return thread, nil
}

// repairCoverage enforces the two storyline coverage invariants as a
// one-shot post-pass: every beat with threads carries at least one
// responsive-or-hot thread, and the storyline as a whole carries at
// least one hot thread. Repair only ever promotes.
func repairCoverage(beats []*narrative.StoryBeat, rng *rand.Rand) {
	for _, beat := range beats {
		if len(beat.Threads) == 0 {
			continue
		}
		covered := false
		for _, t := range beat.Threads {
			if t.Relevance == narrative.RelevanceResponsive || t.IsHot {
				covered = true
				break
			}
		}
		if !covered {
			pick := beat.Threads[rng.IntN(len(beat.Threads))]
			pick.Relevance = narrative.RelevanceResponsive
		}
	}

	for _, beat := range beats {
		for _, t := range beat.Threads {
			if t.IsHot {
				return
			}
		}
	}

	// No hot thread anywhere: promote one in the beat at the
	// storyline's structural midpoint, walking outward if the midpoint
	// beat happens to be empty.
	mid := len(beats) / 2
	for offset := 0; offset < len(beats); offset++ {
		for _, idx := range []int{mid - offset, mid + offset} {
			if idx < 0 || idx >= len(beats) || len(beats[idx].Threads) == 0 {
				continue
			}
			pick := beats[idx].Threads[rng.IntN(len(beats[idx].Threads))]
			pick.IsHot = true
			pick.Relevance = narrative.RelevanceResponsive
			return
		}
	}
}
