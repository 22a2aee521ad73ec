package reversi

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/reversi/config"
	"github.com/gorgonia/reversi/game"
	"github.com/gorgonia/reversi/protocol"
)

func TestRunnerSelfPlay(t *testing.T) {
	// two runners wired to each other, after a referee has told them the black hole and their colours
	blackIn, whiteOut := io.Pipe()
	whiteIn, blackOut := io.Pipe()

	engine, err := NewEngine(config.Minimax, quick())
	require.NoError(t, err)
	black := NewRunner(protocol.New(io.MultiReader(strings.NewReader("a1\nblack\n"), blackIn), blackOut), engine, true, false)
	white := NewRunner(protocol.New(io.MultiReader(strings.NewReader("A1\nWHITE\n"), whiteIn), whiteOut), engine, true, false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, r := range []*Runner{black, white} {
		wg.Add(1)
		go func(i int, r *Runner) {
			defer wg.Done()
			errs[i] = r.Run(ctx)
		}(i, r)
	}
	wg.Wait()
	blackOut.Close()
	whiteOut.Close()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert := assert.New(t)
	assert.Equal(game.BlackPlayer, black.Player())
	assert.Equal(game.WhitePlayer, white.Player())
	assert.Equal(game.Point(0), black.Match().Board().Hole())
	assert.Equal(black.Match().Board(), white.Match().Board())
	assert.Equal(black.Match().Status(), white.Match().Status())
	assert.True(black.Match().Status().IsOver())
	assert.True(black.Match().Anti())
}

func TestRunnerSkipsIllegalMoves(t *testing.T) {
	assert := assert.New(t)
	engine, err := NewEngine(config.Minimax, quick())
	require.NoError(t, err)

	// h8 is not a legal opening, "hello" is not a token at all. d3 is.
	in := strings.NewReader("white\nh8\nhello\nd3\n")
	pr, pw := io.Pipe()
	r := NewRunner(protocol.New(in, pw), engine, false, true)

	sent := make(chan string, 1)
	go func() {
		s := bufio.NewScanner(pr)
		for s.Scan() {
			sent <- s.Text()
		}
		close(sent)
	}()

	err = r.Run(context.Background())
	assert.Equal(io.EOF, errors.Cause(err)) // the input runs out after our reply
	pw.Close()

	reply, ok := <-sent
	require.True(t, ok)
	tok, err := protocol.ParseToken(reply)
	require.NoError(t, err)
	assert.Equal(protocol.Move, tok.Kind)

	m := r.Match()
	assert.Equal(2, m.MoveNumber())
	assert.Equal("D3", m.History()[0].Point.String())
	assert.Equal(tok.Point, m.LastMove().Point)
	assert.Equal(game.WhitePlayer, m.LastMove().Player)
	assert.Equal(game.Pass, m.Board().Hole())
}

func TestRunnerSetupErrors(t *testing.T) {
	engine, err := NewEngine(config.Minimax, quick())
	require.NoError(t, err)
	tests := []struct {
		name, in    string
		noBlackHole bool
	}{
		{"colour instead of the hole", "black\n", false},
		{"hole on a starting disc", "d4\nblack\n", false},
		{"move instead of the colour", "b2\nc4\n", false},
		{"nothing", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRunner(protocol.New(strings.NewReader(tc.in), io.Discard), engine, false, tc.noBlackHole)
			assert.Error(t, r.Run(context.Background()))
		})
	}
}

func TestRunnerPasses(t *testing.T) {
	assert := assert.New(t)
	engine, err := NewEngine(config.Minimax, quick())
	require.NoError(t, err)

	// black is to move and has nothing, white has one move left, after which the board is decided
	r := NewRunner(protocol.New(strings.NewReader("black\npass\n"), io.Discard), engine, false, true)
	require.NoError(t, r.setup(context.Background()))
	r.match = game.FromBoard(game.MustParseBoard(`
		W B _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _
		_ _ _ _ _ _ _ _`), game.BlackPlayer, false)

	var buf, logs strings.Builder
	r.Conn = protocol.New(strings.NewReader("c1\n"), &buf)
	r.Logger = zerolog.New(&logs)
	require.NoError(t, r.run(context.Background()))
	assert.Equal("pass\n", buf.String())
	assert.True(r.Match().Status().IsOver())
	assert.Equal(game.WhiteWon, r.Match().Status())

	// black ends with no discs against three
	assert.Contains(logs.String(), `"message":"game-over"`)
	assert.Contains(logs.String(), `"balance":-3`)
}
