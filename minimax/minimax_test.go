package minimax

import (
	"context"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/gorgonia/reversi/eval"
	"github.com/gorgonia/reversi/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// minimax is the textbook full width minimax, without pruning. It scores leaves from the engine's
// point of view and maximizes when (mover == engine) XOR anti.
func minimax(b game.Board, mover, engine game.Player, depth, maxDepth int, conf Config) int {
	moves := b.LegalMoves(mover)
	if depth == 0 || len(moves) == 0 {
		return eval.Evaluator{Parity: conf.Parity}.Eval(b, engine, maxDepth)
	}
	maximizing := (mover == engine) != conf.Anti
	var best int
	for i, m := range moves {
		v := minimax(b.WithMove(m), mover.Opponent(), engine, depth-1, maxDepth, conf)
		switch {
		case i == 0:
			best = v
		case maximizing && v > best:
			best = v
		case !maximizing && v < best:
			best = v
		}
	}
	return best
}

// positions are a handful of midgame boards reached by random play.
func positions(t *testing.T, seed int64, n int) (retVal []*game.Match) {
	r := game.NewRand(seed)
	for len(retVal) < n {
		m := game.NewMatch(game.Point(r.Intn(2)*63), false)
		plies := 6 + r.Intn(30)
		for i := 0; i < plies; i++ {
			if ended, _ := m.Ended(); ended {
				break
			}
			if m.Advance() {
				continue
			}
			if err := m.Apply(game.RandomMove(r, m.LegalMoves())); err != nil {
				t.Fatal(err)
			}
		}
		if len(m.LegalMoves()) > 0 {
			retVal = append(retVal, m)
		}
	}
	return
}

func TestNegamaxEqualsMinimax(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	for _, anti := range []bool{false, true} {
		for depth := 1; depth <= 3; depth++ {
			for _, m := range positions(t, 1337+int64(depth), 6) {
				conf := Config{Depth: depth, Anti: anti, Parity: true}
				p := m.ToMove()
				res, err := Search(ctx, m.Board(), p, conf)
				is.NoErr(err)

				// the root of the full width search, move by move
				engine := minimax(m.Board(), p, p, depth, depth, conf)
				want := engine
				if anti {
					want = -engine
				}
				is.Equal(res.Score, want) // pruning must not change the score

				child := minimax(m.Board().WithMove(res.Move), p.Opponent(), p, depth-1, depth, conf)
				is.Equal(child, engine) // the returned move must achieve the score
			}
		}
	}
}

func TestNegamaxWindow(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	for _, m := range positions(t, 7, 4) {
		s := newSolver(m.ToMove(), Config{Depth: 3})
		full, err := s.negamax(ctx, m.Board(), m.ToMove(), 3, -HugeNumber, HugeNumber)
		is.NoErr(err)
		is.Equal(full, minimax(m.Board(), m.ToMove(), m.ToMove(), 3, 3, Config{}))
		is.True(s.nodes.Load() > 0)
	}
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	m := positions(t, 99, 1)[0]
	conf := DefaultConfig()
	first, err := Search(context.Background(), m.Board(), m.ToMove(), conf)
	is.NoErr(err)
	for i := 0; i < 5; i++ {
		again, err := Search(context.Background(), m.Board(), m.ToMove(), conf)
		is.NoErr(err)
		is.Equal(first.Move.Point, again.Move.Point)
		is.Equal(first.Score, again.Score)
	}
}

func TestTieBreakLowestPoint(t *testing.T) {
	is := is.New(t)
	// the opening is symmetric: the four moves score the same at depth 1
	b := game.NewBoard(game.Pass)
	res, err := Search(context.Background(), b, game.BlackPlayer, Config{Depth: 1})
	is.NoErr(err)
	is.Equal(res.Move.Point.String(), "D3")
}

func TestErrors(t *testing.T) {
	is := is.New(t)
	b := game.MustParseBoard(`
		W B _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _`)
	_, err := Search(context.Background(), b, game.BlackPlayer, DefaultConfig())
	is.Equal(err, ErrNoMoves)

	_, err = Search(context.Background(), b, game.WhitePlayer, Config{Depth: 0})
	is.True(err != nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Search(ctx, game.NewBoard(game.Pass), game.BlackPlayer, DefaultConfig())
	is.True(err != nil)
}

func TestBestSlot(t *testing.T) {
	is := is.New(t)
	var s bestSlot
	_, _, ok := s.load()
	is.True(!ok)

	is.True(s.offer(-5, 40))
	is.True(s.offer(10, 30))
	is.True(!s.offer(10, 31)) // same score, higher point
	is.True(s.offer(10, 12))  // same score, lower point
	is.True(!s.offer(-HugeNumber, 0))

	score, p, ok := s.load()
	is.True(ok)
	is.Equal(score, 10)
	is.Equal(p, game.Point(12))
}
