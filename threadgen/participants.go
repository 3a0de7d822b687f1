package threadgen

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/foliosim/threadloom/catalog"
	"github.com/foliosim/threadloom/ident"
	"github.com/foliosim/threadloom/narrative"
)

// Character counts per organization. External threads pull a narrow
// slice from each side; internal threads run wider.
const (
	externalMinChars = 1
	externalMaxChars = 3
	internalMinChars = 2
	internalMaxChars = 5
)

// AssignThreadParticipants staffs a thread from the organizational
// catalog. Relevant threads are steered toward a key character; all
// picks are draws without replacement, and only set membership of the
// result is meaningful.
func (g *Generator) AssignThreadParticipants(thread *narrative.EmailThread, orgs []*catalog.Organization, rng *rand.Rand) error {
	if thread == nil || thread.ID.IsNil() {
		return fmt.Errorf("thread is missing an identifier")
	}
	if rng == nil {
		return fmt.Errorf("random stream is required")
	}

	var candidates []*catalog.Organization
	for _, org := range orgs {
		if len(org.Deliverable()) > 0 {
			candidates = append(candidates, org)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no organization has a character with a usable address")
	}

	requiresKey := thread.Relevance == narrative.RelevanceResponsive || thread.IsHot

	var selected []*catalog.Organization
	if thread.Scope == narrative.ScopeExternal {
		selected = selectExternalOrgs(candidates, requiresKey, rng)
	} else {
		selected = []*catalog.Organization{selectInternalOrg(candidates, requiresKey, rng)}
	}

	// When the thread needs a key actor, designate one from the first
	// selected organization that has any; character picks below force
	// that one in.
	var forced *catalog.Character
	if requiresKey {
		for _, org := range selected {
			if keys := org.KeyCharacters(); len(keys) > 0 {
				forced = keys[rng.IntN(len(keys))]
				break
			}
		}
	}

	var characters []*catalog.Character
	for _, org := range selected {
		lo, hi := externalMinChars, externalMaxChars
		if thread.Scope == narrative.ScopeInternal {
			lo, hi = internalMinChars, internalMaxChars
		}
		characters = append(characters, pickCharacters(org, lo, hi, forced, rng)...)
	}

	thread.Organizations = nil
	thread.Characters = nil
	thread.Roles = nil

	for _, org := range selected {
		thread.Organizations = append(thread.Organizations, org.ID)
	}

	seenChar := make(map[ident.ID]bool)
	seenRole := make(map[ident.ID]bool)
	for _, c := range characters {
		if seenChar[c.ID] {
			continue
		}
		seenChar[c.ID] = true
		thread.Characters = append(thread.Characters, c.ID)

		if c.Current != nil && !seenRole[c.Current.RoleID] {
			seenRole[c.Current.RoleID] = true
			thread.Roles = append(thread.Roles, c.Current.RoleID)
		}
	}

	return nil
}

// selectExternalOrgs picks the organizations on an external thread:
// everything when the pool is two or fewer, otherwise two distinct
// picks, with one swapped for a key-bearing organization when the
// thread needs a key actor and neither pick has one.
func selectExternalOrgs(candidates []*catalog.Organization, requiresKey bool, rng *rand.Rand) []*catalog.Organization {
	var selected []*catalog.Organization
	if len(candidates) <= 2 {
		selected = slices.Clone(candidates)
	} else {
		selected = pickN(candidates, 2, rng)
	}

	if !requiresKey {
		return selected
	}
	for _, org := range selected {
		if org.HasKeyCharacter() {
			return selected
		}
	}

	var keyed []*catalog.Organization
	for _, org := range candidates {
		if org.HasKeyCharacter() && !slices.Contains(selected, org) {
			keyed = append(keyed, org)
		}
	}
	if len(keyed) == 0 {
		// No key-bearing organization exists anywhere; leave the picks
		// alone.
		return selected
	}
	selected[rng.IntN(len(selected))] = keyed[rng.IntN(len(keyed))]
	return selected
}

// selectInternalOrg picks the single organization of an internal
// thread, preferring a key-bearing one when the thread needs a key
// actor.
func selectInternalOrg(candidates []*catalog.Organization, requiresKey bool, rng *rand.Rand) *catalog.Organization {
	if requiresKey {
		var keyed []*catalog.Organization
		for _, org := range candidates {
			if org.HasKeyCharacter() {
				keyed = append(keyed, org)
			}
		}
		if len(keyed) > 0 {
			return keyed[rng.IntN(len(keyed))]
		}
	}
	return candidates[rng.IntN(len(candidates))]
}

// pickCharacters draws between lo and hi deliverable characters from an
// organization, forcing the designated key character first when they
// belong to it.
func pickCharacters(org *catalog.Organization, lo, hi int, forced *catalog.Character, rng *rand.Rand) []*catalog.Character {
	pool := org.Deliverable()
	want := lo + rng.IntN(hi-lo+1)
	if want > len(pool) {
		want = len(pool)
	}

	if forced == nil || !slices.Contains(pool, forced) {
		return pickN(pool, want, rng)
	}

	rest := make([]*catalog.Character, 0, len(pool)-1)
	for _, c := range pool {
		if c != forced {
			rest = append(rest, c)
		}
	}
	out := []*catalog.Character{forced}
	if want > 1 {
		out = append(out, pickN(rest, want-1, rng)...)
	}
	return out
}

// pickN draws n distinct items by partial shuffle. Selection order is
// incidental; callers treat the result as a set.
func pickN[T any](items []T, n int, rng *rand.Rand) []T {
	if n >= len(items) {
		return slices.Clone(items)
	}
	pool := slices.Clone(items)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
