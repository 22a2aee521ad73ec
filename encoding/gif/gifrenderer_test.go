package gif

import (
	"bytes"
	stdgif "image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/reversi/game"
)

type meta struct {
	*game.Match
}

func (m meta) Name() string                { return "test" }
func (m meta) Epoch() int                  { return 0 }
func (m meta) GameNumber() int             { return 1 }
func (m meta) Score(p game.Player) float64 { return float64(m.Match.Score(p)) }
func (m meta) State() game.State           { return m.Match }

func TestEncoder(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, 1000, 1000)

	m := game.NewMatch(game.Point(0), false)
	r := game.NewRand(7)
	plies := 0
	for ended, _ := m.Ended(); !ended; ended, _ = m.Ended() {
		if m.Advance() {
			continue
		}
		require.NoError(t, m.Apply(game.RandomMove(r, m.LegalMoves())))
		require.NoError(t, enc.Encode(meta{m}))
		plies++
	}
	assert.Equal(plies, enc.Frames())
	require.NoError(t, enc.Flush())
	assert.Equal(0, enc.Frames())

	g, err := stdgif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(g.Image, plies)
	assert.Equal(300, g.Delay[plies-1])
	assert.Equal(0, g.Delay[0])
	assert.True(enc.W <= 1000 && enc.H <= 1000)

	// nothing to write
	assert.NoError(enc.Flush())
}
