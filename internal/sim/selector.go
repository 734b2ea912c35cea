package sim

import (
	"sort"

	"github.com/mtgtools/revealsim/internal/card"
)

// MaxKeep is how many revealed cards may be kept.
const MaxKeep = 4

// Selection reports which revealed cards were chosen and the union of their
// types. Callers usually only need Covered.Count(); the card list is kept
// for debugging and verification.
type Selection struct {
	Cards   []card.Card
	Covered card.TypeSet
}

// Count returns the number of distinct types covered by the selection.
func (s Selection) Count() int { return s.Covered.Count() }

// SelectCoverage runs the two-phase greedy pick over a revealed set. It is a
// pure function of the revealed slice: ties in both sort phases fall back to
// the original reveal order (stable sort), so repeated calls on the same
// input choose the same cards.
//
// Phase 1 makes one attempt per type in universe order, preferring the
// highest mana value among cards carrying that type, and keeps a card only
// if it contributes at least one new type. Phase 1 is not capped at MaxKeep;
// see Phase 2 for the explicit cap. Phase 2 fills remaining slots (when
// fewer than MaxKeep were picked) with the cards covering the most
// still-uncovered types.
func SelectCoverage(revealed []card.Card) Selection {
	if len(revealed) == 0 {
		return Selection{}
	}

	selected := make([]bool, len(revealed))
	var sel Selection

	// Phase 1: one attempt per type, in enumeration order.
	for _, t := range card.Universe {
		var candidates []int
		for i, c := range revealed {
			if !selected[i] && c.Types.Has(t) {
				candidates = append(candidates, i)
			}
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			return revealed[candidates[a]].ManaValue > revealed[candidates[b]].ManaValue
		})
		for _, i := range candidates {
			if revealed[i].Types.SubsetOf(sel.Covered) {
				continue // contributes nothing new
			}
			selected[i] = true
			sel.Cards = append(sel.Cards, revealed[i])
			sel.Covered = sel.Covered.Union(revealed[i].Types)
			break
		}
	}

	// Phase 2: fill remaining slots up to MaxKeep.
	if len(sel.Cards) > 0 && len(sel.Cards) < MaxKeep {
		var candidates []int
		for i, c := range revealed {
			if !selected[i] && c.Types.Diff(sel.Covered) != 0 {
				candidates = append(candidates, i)
			}
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			ua := revealed[candidates[a]].Types.Diff(sel.Covered).Count()
			ub := revealed[candidates[b]].Types.Diff(sel.Covered).Count()
			return ua > ub
		})
		for _, i := range candidates {
			if len(sel.Cards) >= MaxKeep {
				break
			}
			// the uncovered set shrinks as picks are made; re-check
			if revealed[i].Types.Diff(sel.Covered) == 0 {
				continue
			}
			selected[i] = true
			sel.Cards = append(sel.Cards, revealed[i])
			sel.Covered = sel.Covered.Union(revealed[i].Types)
		}
	}

	return sel
}
