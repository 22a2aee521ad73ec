package mcts

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/gorgonia/reversi/game"
)

/*
Here lies the search loop, while node.go and tree.go handle the data structure stuff.

Each root move is searched by its own goroutine on its own tree. A timer goroutine waits for the
timeout, then hands out one stop token per tree and closes the channel. The workers poll the channel
without blocking between iterations.
*/

// Result is the outcome of a search.
type Result struct {
	Move   game.PlayerMove
	Ratio  float32 // win ratio of Move
	Visits uint32  // playouts through Move
	Trees  []*Tree // one per root move. Empty when there was nothing to search
}

// MCTS is the tree searcher.
type MCTS struct {
	Config
}

func New(conf Config) *MCTS { return &MCTS{Config: conf} }

// Search finds the best move for p on b.
func (t *MCTS) Search(b game.Board, p game.Player) (retVal Result, err error) {
	if !t.IsValid() {
		return retVal, errors.Errorf("Invalid search configuration %+v", t.Config)
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
	trees := make([]*Tree, 0, len(moves))
	for _, m := range moves {
		trees = append(trees, newTree(b, m, t.Config, treeRand(t.Seed, hash, m.Point)))
	}

	var wg sync.WaitGroup
	stop := make(chan struct{}, len(trees))
	done := make(chan struct{})
	go timer(t.Timeout, len(trees), stop, done)
	for _, tree := range trees {
		wg.Add(1)
		go doSearch(tree, stop, &wg)
	}
	wg.Wait()
	close(done)

	standings := lo.Map(trees, func(tree *Tree, i int) pair {
		root := tree.Root()
		return pair{Index: i, Point: tree.move.Point, Ratio: root.Ratio(), Visits: root.Visits()}
	})
	top := best(standings)
	// when no tree got a single playout in, the lowest point is as good as any
	retVal = Result{
		Move:   moves[top.Index],
		Ratio:  top.Ratio,
		Visits: top.Visits,
		Trees:  trees,
	}

	log.Debug().
		Str("player", p.String()).
		Str("move", retVal.Move.Point.String()).
		Float32("ratio", retVal.Ratio).
		Uint32("visits", retVal.Visits).
		Int("nodes", lo.SumBy(trees, func(tree *Tree) int { return tree.Nodes() })).
		Strs("ratios", lo.Map(standings, func(s pair, _ int) string {
			return fmt.Sprintf("%v:%.3f", s.Point, s.Ratio)
		})).
		Dur("elapsed", time.Since(start)).
		Msg("mcts-best-move")
	return retVal, nil
}

// timer sends one stop token per tree when the timeout elapses, then closes the channel.
// A zero timeout never fires. It returns early once done is closed.
func timer(timeout time.Duration, trees int, stop chan<- struct{}, done <-chan struct{}) {
	if timeout <= 0 {
		<-done
		return
	}
	select {
	case <-time.After(timeout):
	case <-done:
		return
	}
	for i := 0; i < trees; i++ {
		stop <- struct{}{}
	}
	close(stop)
}

func doSearch(t *Tree, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	for i := 0; t.Budget <= 0 || i < t.Budget; i++ {
		select {
		case <-stop:
			return
		default:
		}
		t.iterate()
	}
}

// treeRand gives every tree its own generator. With a seed the generator depends only on the seed,
// the position and the root move, so that searches are reproducible.
func treeRand(seed, hash int64, p game.Point) game.Rand {
	if seed == 0 {
		return game.NewRand(0)
	}
	s := seed ^ hash ^ int64(p)<<56
	if s == 0 {
		s = seed
	}
	return game.NewRand(s)
}
