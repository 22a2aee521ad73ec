// Package minimax implements a fixed depth alpha-beta negamax search. The moves at the root are
// searched in parallel, one goroutine per move.
package minimax

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gorgonia/reversi/game"
)

// ErrNoMoves is returned when the player to search for has nothing to play. The caller should pass instead.
var ErrNoMoves = errors.New("No legal moves to search")

// Config configures the search.
type Config struct {
	Depth  int  // plies to search. Must be at least 1
	Anti   bool // fewest discs wins
	Parity bool // use the parity adjustment at the leaves
}

func DefaultConfig() Config {
	return Config{
		Depth:  4,
		Parity: true,
	}
}

func (c Config) IsValid() bool { return c.Depth >= 1 }

// Result is the outcome of a search.
type Result struct {
	Move  game.PlayerMove
	Score int   // score of Move from the engine's point of view
	Nodes int64 // nodes visited
}

// Search finds the best move for p on b.
func Search(ctx context.Context, b game.Board, p game.Player, conf Config) (retVal Result, err error) {
	if !conf.IsValid() {
		return retVal, errors.Errorf("Invalid search depth %d", conf.Depth)
	}
	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		return retVal, ErrNoMoves
	}

	start := time.Now()
	s := newSolver(p, conf)
	var best bestSlot

	g, ctx := errgroup.WithContext(ctx)
	for _, m := range moves {
		m := m
		g.Go(func() error {
			v, err := s.negamax(ctx, b.WithMove(m), p.Opponent(), conf.Depth-1, -HugeNumber, HugeNumber)
			if err != nil {
				return err
			}
			best.offer(-v, m.Point)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return retVal, errors.WithMessage(err, "search interrupted")
	}

	score, pt, _ := best.load()
	retVal.Move, _ = moves.Find(pt)
	retVal.Score = score
	retVal.Nodes = s.nodes.Load()

	log.Debug().
		Str("player", p.String()).
		Str("move", retVal.Move.Point.String()).
		Int("score", score).
		Int64("nodes", retVal.Nodes).
		Int("depth", conf.Depth).
		Dur("elapsed", time.Since(start)).
		Msg("minimax-best-move")
	return retVal, nil
}
