package mcts

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/gorgonia/reversi/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// wipeout has two moves for Black. C1 takes every white disc and ends the game, B2 doesn't.
const wipeout = `
	B W _ W B _ _ _
	_ _ W B _ _ _ _
	_ _ B _ _ _ _ _
	_ _ _ _ _ _ _ _
	_ _ _ _ _ _ _ _
	_ _ _ _ _ _ _ _
	_ _ _ _ _ _ _ _
	_ _ _ _ _ _ _ _`

func budgeted(budget int, seed int64) Config {
	conf := DefaultConfig()
	conf.Budget = budget
	conf.Seed = seed
	return conf
}

func TestSingleMove(t *testing.T) {
	is := is.New(t)
	b := game.MustParseBoard(`
		B W _ W B _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _`)
	conf := DefaultConfig()
	conf.Timeout = time.Hour // must not be waited for

	res, err := New(conf).Search(b, game.BlackPlayer)
	is.NoErr(err)
	is.Equal(res.Move.Point.String(), "C1")
	is.Equal(len(res.Trees), 0)

	res, err = NewFlat(conf).Search(b, game.BlackPlayer)
	is.NoErr(err)
	is.Equal(res.Move.Point.String(), "C1")
}

func TestNoMoves(t *testing.T) {
	is := is.New(t)
	b := game.MustParseBoard(wipeout)
	_, err := New(budgeted(10, 1)).Search(b, game.WhitePlayer)
	is.NoErr(err) // white can still move here

	b = game.MustParseBoard(`
		W B _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _`)
	_, err = New(budgeted(10, 1)).Search(b, game.BlackPlayer)
	is.Equal(err, ErrNoMoves)
	_, err = NewFlat(budgeted(10, 1)).Search(b, game.BlackPlayer)
	is.Equal(err, ErrNoMoves)

	_, err = New(Config{}).Search(game.NewBoard(game.Pass), game.BlackPlayer)
	is.True(err != nil) // neither a timeout nor a budget
}

func TestForcedWin(t *testing.T) {
	is := is.New(t)
	b := game.MustParseBoard(wipeout)

	res, err := New(budgeted(300, 1337)).Search(b, game.BlackPlayer)
	is.NoErr(err)
	is.Equal(res.Move.Point.String(), "C1")
	is.Equal(res.Ratio, float32(1))
	is.Equal(res.Visits, uint32(300))
	is.Equal(len(res.Trees), 2)

	res, err = NewFlat(budgeted(300, 1337)).Search(b, game.BlackPlayer)
	is.NoErr(err)
	is.Equal(res.Move.Point.String(), "C1")
	is.Equal(res.Ratio, float32(1))
}

func TestForcedLossInAnti(t *testing.T) {
	is := is.New(t)
	b := game.MustParseBoard(wipeout)
	conf := budgeted(200, 7)
	conf.Anti = true

	res, err := New(conf).Search(b, game.BlackPlayer)
	is.NoErr(err)
	for _, tree := range res.Trees {
		if tree.Move().Point.String() != "C1" {
			continue
		}
		// black ends with every disc on the board: the most discs loses
		is.Equal(tree.Ratio(), float32(0))
		is.Equal(tree.Root().Visits(), uint32(200))
		is.True(tree.Root().IsLeaf())
	}
}

// TestVisitsGrowWithBudget uses iteration budgets so the counts are exact. TestVisitsGrowWithTime is
// the coarse version with time limits.
func TestVisitsGrowWithBudget(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard(game.Pass)
	var prev uint32
	for _, budget := range []int{10, 50, 250} {
		res, err := New(budgeted(budget, 42)).Search(b, game.BlackPlayer)
		is.NoErr(err)
		is.True(res.Visits > prev)
		prev = res.Visits

		for _, tree := range res.Trees {
			is.Equal(tree.Iterations(), budget)
			is.Equal(tree.Root().Visits(), uint32(budget))
			is.True(tree.Root().Wins() <= tree.Root().Visits())
		}
	}
}

func TestVisitsGrowWithTime(t *testing.T) {
	if testing.Short() {
		t.Skip("timing")
	}
	is := is.New(t)
	visits := func(d time.Duration) (retVal uint32) {
		conf := DefaultConfig()
		conf.Timeout = d
		res, err := New(conf).Search(game.NewBoard(game.Pass), game.BlackPlayer)
		is.NoErr(err)
		for _, tree := range res.Trees {
			retVal += tree.Root().Visits()
		}
		return retVal
	}
	short, long := visits(10*time.Millisecond), visits(200*time.Millisecond)
	is.True(long > short)
}

func TestReproducible(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard(game.Point(0))
	first, err := New(budgeted(100, 99)).Search(b, game.BlackPlayer)
	is.NoErr(err)
	second, err := New(budgeted(100, 99)).Search(b, game.BlackPlayer)
	is.NoErr(err)
	is.Equal(first.Move.Point, second.Move.Point)
	is.Equal(first.Ratio, second.Ratio)
	for i := range first.Trees {
		is.Equal(first.Trees[i].Nodes(), second.Trees[i].Nodes())
		is.Equal(first.Trees[i].Root().Wins(), second.Trees[i].Root().Wins())
	}
}

func TestTimeout(t *testing.T) {
	is := is.New(t)
	conf := DefaultConfig()
	conf.Timeout = 50 * time.Millisecond

	start := time.Now()
	res, err := New(conf).Search(game.NewBoard(game.Pass), game.BlackPlayer)
	is.NoErr(err)
	is.True(time.Since(start) < 5*time.Second)
	moves := game.NewBoard(game.Pass).LegalMoves(game.BlackPlayer)
	_, ok := moves.Find(res.Move.Point)
	is.True(ok)

	res, err = NewFlat(conf).Search(game.NewBoard(game.Pass), game.BlackPlayer)
	is.NoErr(err)
	_, ok = moves.Find(res.Move.Point)
	is.True(ok)
}

func TestZeroIterations(t *testing.T) {
	is := is.New(t)
	conf := DefaultConfig()
	conf.Timeout = time.Nanosecond
	conf.Budget = -1 // budget off, the timer alone decides
	res, err := New(conf).Search(game.NewBoard(game.Pass), game.BlackPlayer)
	is.NoErr(err)
	_, ok := game.NewBoard(game.Pass).LegalMoves(game.BlackPlayer).Find(res.Move.Point)
	is.True(ok)
}

func TestBackpropagation(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard(game.Pass)
	m := b.LegalMoves(game.BlackPlayer)[0]
	tree := newTree(b, m, budgeted(1, 3), game.NewRand(3))

	kid := tree.expand(0)
	is.True(kid != 0)
	is.Equal(tree.nodeFromNaughty(kid).ToMove(), game.BlackPlayer)
	is.Equal(len(tree.Children(0)), len(b.WithMove(m).LegalMoves(game.WhitePlayer)))

	tree.backpropagate(kid, game.WhiteWon)
	is.Equal(tree.nodeFromNaughty(kid).Wins(), uint32(1)) // white moved into the child
	is.Equal(tree.Root().Wins(), uint32(0))              // black moved into the root
	is.Equal(tree.Root().Visits(), uint32(1))

	tree.backpropagate(kid, game.Tie)
	is.Equal(tree.nodeFromNaughty(kid).Wins(), uint32(1))
	is.Equal(tree.Root().Visits(), uint32(2))
}

func TestSelectionPrefersUnvisited(t *testing.T) {
	is := is.New(t)
	b := game.NewBoard(game.Pass)
	m := b.LegalMoves(game.BlackPlayer)[0]
	tree := newTree(b, m, budgeted(1, 3), game.NewRand(3))
	tree.expand(0)
	kids := tree.Children(0)

	seen := make(map[naughty]bool)
	for range kids {
		n := tree.selection()
		is.True(!seen[n])
		seen[n] = true
		tree.backpropagate(n, game.BlackWon)
	}
	is.Equal(len(seen), len(kids))
}

func TestFancySort(t *testing.T) {
	is := is.New(t)
	l := []pair{
		{Index: 0, Point: 20, Ratio: 0, Visits: 0},
		{Index: 1, Point: 30, Ratio: 0.5, Visits: 10},
		{Index: 2, Point: 12, Ratio: 0.5, Visits: 4},
		{Index: 3, Point: 2, Ratio: 0.25, Visits: 8},
	}
	is.Equal(best(l).Index, 2)
	is.Equal(l[len(l)-1].Index, 0)
}

func TestToDot(t *testing.T) {
	is := is.New(t)
	res, err := New(budgeted(20, 5)).Search(game.NewBoard(game.Pass), game.BlackPlayer)
	is.NoErr(err)
	dot := res.Trees[0].ToDot(1)
	is.True(strings.Contains(dot, "digraph"))
	is.True(strings.Contains(dot, "n0"))
	is.True(strings.Contains(dot, "->"))
}
