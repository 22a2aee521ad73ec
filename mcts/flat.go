package mcts

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/gorgonia/reversi/game"
)

// Flat is flat Monte Carlo: every root move gets uniformly random playouts, no tree is built.
// Only Exploration is ignored from the Config.
type Flat struct {
	Config
}

func NewFlat(conf Config) *Flat { return &Flat{Config: conf} }

// outcome is the result of one playout of a root move.
type outcome struct {
	index int
	won   bool
}

// Search finds the best move for p on b.
func (f *Flat) Search(b game.Board, p game.Player) (retVal Result, err error) {
	if !f.IsValid() {
		return retVal, errors.Errorf("Invalid search configuration %+v", f.Config)
	}
	moves := b.LegalMoves(p)
	switch len(moves) {
	case 0:
		return retVal, ErrNoMoves
	case 1:
		return Result{Move: moves[0]}, nil
	}

	start := time.Now()
	hash := int64(b.Hash())
	results := make(chan outcome, len(moves))
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for i, m := range moves {
		wg.Add(1)
		go f.playouts(i, b.WithMove(m), p, treeRand(f.Seed, hash, m.Point), results, stop, &wg)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var deadline <-chan time.Time
	if f.Timeout > 0 {
		deadline = time.After(f.Timeout)
	}
	wins := make([]uint32, len(moves))
	visits := make([]uint32, len(moves))
loop:
	for {
		select {
		case o, ok := <-results:
			if !ok {
				break loop
			}
			visits[o.index]++
			if o.won {
				wins[o.index]++
			}
		case <-deadline:
			close(stop)
			deadline = nil
		}
	}

	standings := lo.Map(moves, func(m game.PlayerMove, i int) pair {
		return pair{Index: i, Point: m.Point, Ratio: ratio(wins[i], visits[i]), Visits: visits[i]}
	})
	top := best(standings)
	retVal = Result{
		Move:   moves[top.Index],
		Ratio:  top.Ratio,
		Visits: top.Visits,
	}

	log.Debug().
		Str("player", p.String()).
		Str("move", retVal.Move.Point.String()).
		Float32("ratio", retVal.Ratio).
		Uint32("plays", lo.Sum(visits)).
		Int("moves", len(moves)).
		Dur("elapsed", time.Since(start)).
		Msg("flat-best-move")
	return retVal, nil
}

// playouts plays out the position after root move i until told to stop, or until the budget is spent.
func (f *Flat) playouts(i int, b game.Board, p game.Player, r game.Rand, results chan<- outcome, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	for n := 0; f.Budget <= 0 || n < f.Budget; n++ {
		end := game.Playout(r, b, p.Opponent(), f.Anti)
		select {
		case <-stop:
			return
		case results <- outcome{index: i, won: end.Won(p)}:
		}
	}
}
