package threadgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliosim/threadloom/config"
	"github.com/foliosim/threadloom/ident"
	"github.com/foliosim/threadloom/narrative"
	"github.com/foliosim/threadloom/seed"
)

func testBeats(n int) []*narrative.StoryBeat {
	storylineID := seed.ID("storyline", "test-arc")
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	beats := make([]*narrative.StoryBeat, n)
	for i := range beats {
		beats[i] = &narrative.StoryBeat{
			ID:          seed.ID("story-beat", "test-arc", string(rune('a'+i))),
			StorylineID: storylineID,
			Start:       start.AddDate(0, 0, i*7),
			End:         start.AddDate(0, 0, i*7+6),
		}
	}
	return beats
}

func TestPlanThreadsForBeats_FillsBeats(t *testing.T) {
	g := New(config.DefaultConfig(), nil)
	beats := testBeats(4)

	require.NoError(t, g.PlanThreadsForBeats(beats, 3, seed.Stream("test", "fill")))

	for _, beat := range beats {
		assert.Positive(t, beat.EmailCount)
		require.NotEmpty(t, beat.Threads)

		total := 0
		for _, thread := range beat.Threads {
			require.NoError(t, thread.Validate())
			assert.Equal(t, beat.ID, thread.BeatID)
			assert.Equal(t, beat.StorylineID, thread.StorylineID)
			assert.False(t, thread.ID.IsNil())
			require.NotEmpty(t, thread.Messages)

			for i, msg := range thread.Messages {
				assert.Equal(t, i, msg.SequenceInThread)
				assert.Equal(t, thread.ID, msg.ThreadID)
			}
			total += len(thread.Messages)
		}
		assert.Equal(t, beat.EmailCount, total, "thread sizes must partition the beat volume")
	}
}

func TestPlanThreadsForBeats_CoverageInvariants(t *testing.T) {
	// Run several independent storylines; the invariants must hold for
	// every one regardless of how the classification rolls land.
	for run := 0; run < 25; run++ {
		g := New(config.DefaultConfig(), nil)
		beats := testBeats(5)
		require.NoError(t, g.PlanThreadsForBeats(beats, 2, seed.Stream("test", "coverage", string(rune('a'+run)))))

		sawHot := false
		for _, beat := range beats {
			if len(beat.Threads) == 0 {
				continue
			}
			covered := false
			for _, thread := range beat.Threads {
				if thread.Relevance == narrative.RelevanceResponsive || thread.IsHot {
					covered = true
				}
				if thread.IsHot {
					sawHot = true
					assert.Equal(t, narrative.RelevanceResponsive, thread.Relevance)
				}
			}
			assert.True(t, covered, "run %d: beat %s has no responsive thread", run, beat.ID)
		}
		assert.True(t, sawHot, "run %d: storyline has no hot thread", run)
	}
}

func TestPlanThreadsForBeats_DeterministicIdentifiers(t *testing.T) {
	plan := func() []*narrative.StoryBeat {
		g := New(config.DefaultConfig(), nil)
		beats := testBeats(3)
		require.NoError(t, g.PlanThreadsForBeats(beats, 3, seed.Stream("test", "replay")))
		return beats
	}

	a, b := plan(), plan()
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, len(a[i].Threads), len(b[i].Threads), "beat %d", i)
		for j := range a[i].Threads {
			assert.Equal(t, a[i].Threads[j].ID, b[i].Threads[j].ID)
			assert.Equal(t, a[i].Threads[j].Scope, b[i].Threads[j].Scope)
			assert.Equal(t, a[i].Threads[j].IsHot, b[i].Threads[j].IsHot)
		}
	}
}

func TestPlanThreadsForBeats_Errors(t *testing.T) {
	g := New(config.DefaultConfig(), nil)
	rng := seed.Stream("test", "errors")

	assert.Error(t, g.PlanThreadsForBeats(testBeats(1), 0, rng))
	assert.Error(t, g.PlanThreadsForBeats(testBeats(1), 3, nil))

	orphan := testBeats(1)
	orphan[0].StorylineID = ident.Nil
	assert.Error(t, g.PlanThreadsForBeats(orphan, 3, rng))

	backwards := testBeats(1)
	backwards[0].Start, backwards[0].End = backwards[0].End, backwards[0].Start
	assert.Error(t, g.PlanThreadsForBeats(backwards, 3, rng))
}

func threadOf(beat *narrative.StoryBeat, rel narrative.Relevance, hot bool) *narrative.EmailThread {
	return &narrative.EmailThread{ID: ident.New(), BeatID: beat.ID, Relevance: rel, IsHot: hot}
}

func TestRepairCoverage_PromotesUncoveredBeat(t *testing.T) {
	beats := testBeats(2)
	beats[0].Threads = []*narrative.EmailThread{
		threadOf(beats[0], narrative.RelevanceNonResponsive, false),
		threadOf(beats[0], narrative.RelevanceNonResponsive, false),
	}
	beats[1].Threads = []*narrative.EmailThread{
		threadOf(beats[1], narrative.RelevanceResponsive, true),
	}

	repairCoverage(beats, seed.Stream("test", "repair-beat"))

	covered := false
	for _, thread := range beats[0].Threads {
		if thread.Relevance == narrative.RelevanceResponsive {
			covered = true
		}
	}
	assert.True(t, covered)
}

func TestRepairCoverage_PromotesHotAtMidpoint(t *testing.T) {
	beats := testBeats(5)
	for _, beat := range beats {
		beat.Threads = []*narrative.EmailThread{threadOf(beat, narrative.RelevanceResponsive, false)}
	}

	repairCoverage(beats, seed.Stream("test", "repair-hot"))

	hot := beats[2].Threads[0]
	assert.True(t, hot.IsHot, "midpoint beat thread should be promoted")
	assert.Equal(t, narrative.RelevanceResponsive, hot.Relevance)
}

func TestRepairCoverage_MidpointFallsBackToNonEmptyBeat(t *testing.T) {
	beats := testBeats(5)
	// Midpoint beat has no threads; its neighbors do.
	for i, beat := range beats {
		if i == 2 {
			continue
		}
		beat.Threads = []*narrative.EmailThread{threadOf(beat, narrative.RelevanceResponsive, false)}
	}

	repairCoverage(beats, seed.Stream("test", "repair-fallback"))

	sawHot := false
	for _, beat := range beats {
		for _, thread := range beat.Threads {
			if thread.IsHot {
				sawHot = true
			}
		}
	}
	assert.True(t, sawHot, "hot promotion must land somewhere when the midpoint beat is empty")
}

func TestRepairCoverage_LeavesSatisfiedStorylineAlone(t *testing.T) {
	beats := testBeats(3)
	for _, beat := range beats {
		beat.Threads = []*narrative.EmailThread{threadOf(beat, narrative.RelevanceResponsive, false)}
	}
	beats[0].Threads[0].IsHot = true

	repairCoverage(beats, seed.Stream("test", "repair-noop"))

	hotCount := 0
	for _, beat := range beats {
		for _, thread := range beat.Threads {
			if thread.IsHot {
				hotCount++
			}
		}
	}
	assert.Equal(t, 1, hotCount, "repair must not promote when invariants already hold")
}
