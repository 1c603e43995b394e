package solver

import (
	"math"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// Heuristic weights.
const (
	scoreEmptyTarget  = 10
	scoreColorMatch   = 20
	scoreFillsTube    = 50
	scoreEmptiesTube  = 15
	scoreUniformAfter = 30
)

// Score rates a legal pour. The rules are additive:
//   - +10 when the destination is empty
//   - +20 when the destination top matches the source top, plus 50 more when
//     one more unit would fill the destination
//   - +15 when the source holds a single unit
//   - +30 when the source is uniform after removing its top unit
//
// Fill and empty checks assume a single-unit pour, not the full run Apply moves.
func Score(layout core.Layout, capacity, src, dst int) int {
	from, to := layout[src], layout[dst]
	score := 0

	if len(to) == 0 {
		score += scoreEmptyTarget
	}
	fromTop, _ := from.Top()
	if toTop, ok := to.Top(); ok && toTop == fromTop {
		score += scoreColorMatch
		if len(to)+1 == capacity {
			score += scoreFillsTube
		}
	}
	if len(from) == 1 {
		score += scoreEmptiesTube
	}
	if len(from) > 1 && from[:len(from)-1].IsUniform() {
		score += scoreUniformAfter
	}
	return score
}

// BestMove returns the highest scoring legal move. Ties go to the first pair
// in (source, destination) order. The move carries the real pour amount.
func BestMove(layout core.Layout, capacity int) (core.Move, bool) {
	var best core.Move
	bestScore := math.MinInt
	found := false

	for src := range layout {
		for dst := range layout {
			amount := layout.PourAmount(capacity, src, dst)
			if amount == 0 {
				continue
			}
			score := Score(layout, capacity, src, dst)
			if score > bestScore {
				top, _ := layout[src].Top()
				best = core.Move{From: src, To: dst, Amount: amount, Color: top}
				bestScore = score
				found = true
			}
		}
	}
	return best, found
}
