// Package eval provides the static evaluation used at the leaves of the minimax search.
//
// The evaluation of a position for a player is the sum of three terms:
//	- per disc: the weight of its cell plus 8 for each empty neighbour, positive for own discs and negative for the opponent's
//	- line stability: a penalty for every "hanging" run on the edges and main diagonals, own runs minus opponent runs
//	- parity (optional): half the empty cell value, signed by the depth of the search
//
// Without parity the evaluation is antisymmetric: Evaluate(b, Black) == -Evaluate(b, White).
package eval

import (
	"github.com/gorgonia/reversi/game"
)

// LinePenalty is the penalty for one hanging run.
const LinePenalty = 86

// Classic is the tile weight table. Corners are good, the cells diagonally next to them are bad.
var Classic = [game.Cells]int{
	410, 23, 13, 8, 8, 13, 23, 410,
	23, -75, -22, -51, -51, -22, -75, 23,
	13, -22, 41, 3, 3, 41, -22, 13,
	8, -51, 3, -87, -87, 3, -51, 8,
	8, -51, 3, -87, -87, 3, -51, 8,
	13, -22, 41, 3, 3, 41, -22, 13,
	23, -75, -22, -51, -51, -22, -75, 23,
	410, 23, 13, 8, 8, 13, 23, 410,
}

// Octant is Classic folded into the 10 canonical cells, indexed the same way as game.Canonical.
var Octant = [10]int{410, 23, 13, 8, -75, -22, -51, 41, 3, -87}

var octantIndex = func() (retVal [game.Cells]int) {
	for i := range retVal {
		retVal[i] = -1
	}
	for i, p := range game.Canonical {
		retVal[p] = i
	}
	return
}()

// Weight returns the weight of a cell, looked up through its octant.
func Weight(p game.Point) int {
	c := game.Unmirror8(p.Coord())
	return Octant[octantIndex[c.Point()]]
}

// neighbours are the cells around each cell, computed once.
var neighbours = func() (retVal [game.Cells][]game.Point) {
	for i := range retVal {
		c := game.Point(i).Coord()
		for dy := int8(-1); dy <= 1; dy++ {
			for dx := int8(-1); dx <= 1; dx++ {
				n := game.Coord{X: c.X + dx, Y: c.Y + dy}
				if (dx == 0 && dy == 0) || !n.Valid() {
					continue
				}
				retVal[i] = append(retVal[i], n.Point())
			}
		}
	}
	return
}()

// Mobility is 8 times the number of empty cells around p. A fully surrounded cell counts as if it had 6.
func Mobility(b *game.Board, p game.Point) int {
	var empty int
	for _, n := range neighbours[p] {
		if b[n] == game.None {
			empty++
		}
	}
	if empty == 0 {
		empty = 6
	}
	return 8 * empty
}

// heuristic is the value of one cell.
func heuristic(b *game.Board, p game.Point) int { return Weight(p) + Mobility(b, p) }

// Evaluate scores the board from the point of view of p.
func Evaluate(b game.Board, p game.Player) (score int) {
	own, opp := game.Colour(p), game.Colour(p.Opponent())
	for i, v := range b {
		switch v {
		case own:
			score += heuristic(&b, game.Point(i))
		case opp:
			score -= heuristic(&b, game.Point(i))
		}
	}
	score -= Stability(&b, own)
	score += Stability(&b, opp)
	return score
}

// Parity is the adjustment for the empty cells at the given search depth.
func Parity(b game.Board, depth int) (score int) {
	for i, v := range b {
		if v != game.None {
			continue
		}
		h := heuristic(&b, game.Point(i)) / 2
		if depth%2 == 0 {
			score -= h
		} else {
			score += h
		}
	}
	return score
}

// Evaluator is the configurable evaluation used by the search.
type Evaluator struct {
	Parity bool
}

// Eval evaluates b for p at the given search depth.
func (e Evaluator) Eval(b game.Board, p game.Player, depth int) int {
	score := Evaluate(b, p)
	if e.Parity {
		score += Parity(b, depth)
	}
	return score
}
