package minimax

import (
	"context"
	"sync/atomic"

	"github.com/gorgonia/reversi/eval"
	"github.com/gorgonia/reversi/game"
)

// HugeNumber bounds every score the evaluator can produce.
const HugeNumber = 1 << 24

// Solver searches one position for one player. It is not reusable across positions.
type Solver struct {
	Config
	eval   eval.Evaluator
	engine game.Player
	nodes  atomic.Int64
}

func newSolver(engine game.Player, conf Config) *Solver {
	return &Solver{
		Config: conf,
		eval:   eval.Evaluator{Parity: conf.Parity},
		engine: engine,
	}
}

// leaf scores b for the side about to move.
//
// The engine's objective is the evaluation from its point of view, negated in anti mode. This is the
// same as maximizing when (mover == engine) XOR anti, and minimizing otherwise.
func (s *Solver) leaf(b game.Board, mover game.Player) int {
	v := s.eval.Eval(b, s.engine, s.Depth)
	if s.Anti {
		v = -v
	}
	if mover != s.engine {
		v = -v
	}
	return v
}

// negamax is the Wikipedia formulation:
//
//	function negamax(node, depth, α, β, color) is
//	    if depth = 0 or node is a terminal node then
//	        return color × the heuristic value of node
//	    childNodes := generateMoves(node)
//	    value := −∞
//	    foreach child in childNodes do
//	        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* cut-off *)
//	    return value
//
// A node without moves for the mover is treated as a leaf.
func (s *Solver) negamax(ctx context.Context, b game.Board, mover game.Player, depth int, α, β int) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	s.nodes.Add(1)

	if depth == 0 {
		return s.leaf(b, mover), nil
	}
	moves := b.LegalMoves(mover)
	if len(moves) == 0 {
		return s.leaf(b, mover), nil
	}

	best := -HugeNumber
	for _, m := range moves {
		v, err := s.negamax(ctx, b.WithMove(m), mover.Opponent(), depth-1, -β, -α)
		if err != nil {
			return 0, err
		}
		best = max(best, -v)
		α = max(α, best)
		if α >= β {
			break
		}
	}
	return best, nil
}

// bestSlot holds the best (score, point) pair found so far, packed into one word so that
// workers can update it with a compare-and-swap.
//
// Higher scores win. Among equal scores the lowest point wins.
type bestSlot struct {
	v atomic.Uint64
}

func pack(score int, p game.Point) uint64 {
	hi := uint64(uint32(int32(score)) ^ 1<<31)
	lo := uint64(game.Cells - 1 - int(p))
	return hi<<32 | lo
}

func unpack(k uint64) (score int, p game.Point) {
	score = int(int32(uint32(k>>32) ^ 1<<31))
	p = game.Point(game.Cells - 1 - int(k&0xffffffff))
	return
}

// offer replaces the current best if (score, p) improves on it. It returns true when it did.
func (s *bestSlot) offer(score int, p game.Point) bool {
	k := pack(score, p)
	for {
		old := s.v.Load()
		if k <= old {
			return false
		}
		if s.v.CompareAndSwap(old, k) {
			return true
		}
	}
}

func (s *bestSlot) load() (score int, p game.Point, ok bool) {
	k := s.v.Load()
	if k == 0 {
		return 0, game.Pass, false
	}
	score, p = unpack(k)
	return score, p, true
}
