package mcts

import (
	"sort"

	"github.com/gorgonia/reversi/game"
)

// pair is the standing of one root move.
type pair struct {
	Index  int // index of the move in the list of legal moves
	Point  game.Point
	Ratio  float32
	Visits uint32
}

// fancySort sorts root moves best first: moves that got at least one playout come before the ones
// that didn't, then higher win ratios first, then lower points first.
type fancySort []pair

func (l fancySort) Len() int      { return len(l) }
func (l fancySort) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l fancySort) Less(i, j int) bool {
	// push the unvisited to the back
	switch {
	case l[i].Visits == 0 && l[j].Visits != 0:
		return false
	case l[i].Visits != 0 && l[j].Visits == 0:
		return true
	}

	if l[i].Ratio != l[j].Ratio {
		return l[i].Ratio > l[j].Ratio
	}
	return l[i].Point < l[j].Point
}

// best returns the best pair. l must not be empty. It is sorted in place.
func best(l []pair) pair {
	sort.Sort(fancySort(l))
	return l[0]
}

func ratio(wins, visits uint32) float32 {
	if visits == 0 {
		return 0
	}
	return float32(wins) / float32(visits)
}
