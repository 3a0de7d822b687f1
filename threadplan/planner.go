package threadplan

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/foliosim/threadloom/config"
	"github.com/foliosim/threadloom/dates"
	"github.com/foliosim/threadloom/ident"
	"github.com/foliosim/threadloom/narrative"
	"github.com/foliosim/threadloom/seed"
)

// Intent draw probabilities. Chain messages are mostly replies; a
// branch point is where forwards cluster, because branching usually
// means pulling someone new into an older message.
const (
	chainForwardProb  = 0.12
	branchForwardProb = 0.45
)

// BuildPlan derives the structural plan for one thread. The plan is a
// pure function of (generationSeed, thread.ID, emailCount, start, end,
// cfg): the thread-local random stream is derived from the first two,
// so identical inputs replay identical plans and distinct threads plan
// independently.
func BuildPlan(thread *narrative.EmailThread, emailCount int, start, end time.Time, cfg *config.Config, generationSeed int64) (*Plan, error) {
	if thread == nil || thread.ID.IsNil() {
		return nil, fmt.Errorf("thread is missing an identifier")
	}
	if emailCount <= 0 {
		return nil, fmt.Errorf("email count must be positive, got %d", emailCount)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	rng := seed.Stream("thread-plan", strconv.FormatInt(generationSeed, 10), thread.ID.String())

	slotDates, err := dates.Spread(emailCount, start, end)
	if err != nil {
		return nil, fmt.Errorf("spread dates: %w", err)
	}
	// Pad any shortfall with the window end.
	for len(slotDates) < emailCount {
		slotDates = append(slotDates, end)
	}

	parents, err := buildTopology(emailCount, rng)
	if err != nil {
		return nil, err
	}

	messageIDs := make([]ident.ID, emailCount)
	for i := range messageIDs {
		messageIDs[i] = seed.ID("email-message", thread.ID.String(), strconv.Itoa(i))
	}
	rootID := messageIDs[0]

	plan := &Plan{
		ThreadID:      thread.ID,
		RootMessageID: rootID,
		Slots:         make([]SlotPlan, emailCount),
	}

	branchIDs := make([]ident.ID, emailCount)
	for i := 0; i < emailCount; i++ {
		slot := SlotPlan{
			Index:     i,
			MessageID: messageIDs[i],
			RootID:    rootID,
			Date:      slotDates[i],
			Phase:     phaseFor(i, emailCount),
		}

		switch {
		case i == 0:
			// The root message anchors the root branch.
			branchIDs[0] = rootID
			slot.Intent = IntentNew
		case parents[i] == i-1:
			// Continuing the chain inherits the parent's branch.
			branchIDs[i] = branchIDs[parents[i]]
			parentID := messageIDs[parents[i]]
			slot.ParentID = &parentID
			if rng.Float64() < chainForwardProb {
				slot.Intent = IntentForward
			} else {
				slot.Intent = IntentReply
			}
		default:
			// A branch point mints its own branch identity.
			branchIDs[i] = seed.ID("thread-branch", thread.ID.String(), strconv.Itoa(parents[i]), strconv.Itoa(i))
			parentID := messageIDs[parents[i]]
			slot.ParentID = &parentID
			if rng.Float64() < branchForwardProb {
				slot.Intent = IntentForward
			} else {
				slot.Intent = IntentReply
			}
		}
		slot.BranchID = branchIDs[i]

		plan.Slots[i] = slot
	}

	if err := planAttachments(plan.Slots, &cfg.Attachments, rng); err != nil {
		return nil, err
	}

	return plan, nil
}

// branchCount draws how many extra branches a thread of the given size
// carries. Short threads stay linear; long threads usually fork twice.
func branchCount(count int, rng *rand.Rand) int {
	switch {
	case count < 5:
		return 0
	case count <= 7:
		return 1
	case count <= 11:
		if rng.Float64() < 0.65 {
			return 1
		}
		return 2
	default:
		if rng.Float64() < 0.65 {
			return 2
		}
		return 1
	}
}

// buildTopology returns the parent index for every slot, -1 for the
// root. Baseline is a linear chain; extra branches re-parent a child
// onto an earlier message.
func buildTopology(count int, rng *rand.Rand) ([]int, error) {
	parents := make([]int, count)
	parents[0] = -1
	for i := 1; i < count; i++ {
		parents[i] = i - 1
	}

	used := make(map[int]bool)
	for b := branchCount(count, rng); b > 0; b-- {
		child := -1
		for attempts := 0; attempts < count*4; attempts++ {
			c := 2 + rng.IntN(count-2)
			if !used[c] {
				child = c
				break
			}
		}
		if child == -1 {
			// No unused child index left; drop the branch.
			continue
		}
		used[child] = true

		parent := rng.IntN(child)
		if parent == child-1 {
			// Re-parenting onto the immediate predecessor would just
			// recreate the chain.
			parent--
		}
		if parent < 0 {
			parent = 0
		}
		if parent >= child {
			return nil, fmt.Errorf("branch parent %d not before child %d", parent, child)
		}
		parents[child] = parent
	}

	return parents, nil
}
