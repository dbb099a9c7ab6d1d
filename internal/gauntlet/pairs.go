package gauntlet

import (
	"context"
	"iter"
)

// Pair is an unordered matchup between two albums that have not battled.
// Challenger always appears before Opponent in the collection order.
type Pair struct {
	Challenger Album `json:"challenger"`
	Opponent   Album `json:"opponent"`
}

// UnplayedPairs produces the lazy sequence of unordered pairs (i, j) with
// i before j in the collection order such that neither album has the
// other in its opponent set. The order is deterministic for a fixed
// collection: the outer index ascends, the inner index walks everything
// after it. Quadratic in collection size, which is fine at personal-list
// scale, and the determinism is what makes NextBattle reproducible.
func UnplayedPairs(albums []Album) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for i := range albums {
			for j := i + 1; j < len(albums); j++ {
				if albums[i].HasOpponent(albums[j].ID) || albums[j].HasOpponent(albums[i].ID) {
					continue
				}
				if !yield(Pair{Challenger: albums[i].clone(), Opponent: albums[j].clone()}) {
					return
				}
			}
		}
	}
}

// NextBattle returns the first unplayed pair of the current collection,
// or ErrNoPairsRemaining once the round robin is complete.
func (e *Engine) NextBattle(ctx context.Context) (*Pair, error) {
	albums := e.loadCollection(ctx)
	for pair := range UnplayedPairs(albums) {
		return &pair, nil
	}
	return nil, ErrNoPairsRemaining
}

// ListUnplayedPairs collects every remaining unplayed pair in battle
// order. Returns an empty slice when the round robin is complete.
func (e *Engine) ListUnplayedPairs(ctx context.Context) ([]Pair, error) {
	albums := e.loadCollection(ctx)
	pairs := []Pair{}
	for pair := range UnplayedPairs(albums) {
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
