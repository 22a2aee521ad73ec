package protocol

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorgonia/reversi/game"
)

func TestParseToken(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		in   string
		want Token
	}{
		{"pass", PassToken()},
		{"  PASS\r", PassToken()},
		{"black", ColourToken(game.BlackPlayer)},
		{"White", ColourToken(game.WhitePlayer)},
		{"a1", MoveToken(0)},
		{"H8", MoveToken(63)},
		{"d3", MoveToken(19)},
	}
	for _, tc := range tests {
		got, err := ParseToken(tc.in)
		if assert.NoError(err, tc.in) {
			assert.Equal(tc.want, got, tc.in)
		}
	}

	for _, bad := range []string{"", "i1", "a9", "resign", "a10"} {
		_, err := ParseToken(bad)
		assert.Error(err, bad)
	}
	_, err := ParseToken("Hello")
	assert.EqualError(err, `Unknown token "hello"`)
}

func TestTokenString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("pass", PassToken().String())
	assert.Equal("black", ColourToken(game.BlackPlayer).String())
	assert.Equal("D3", MoveToken(19).String())
	for i := game.Point(0); i < game.Cells; i++ {
		tok, err := ParseToken(MoveToken(i).String())
		assert.NoError(err)
		assert.Equal(i, tok.Point)
	}
}

func TestConnRead(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	in := strings.NewReader("d6\n\nwhite\n what is this\nE3\npass\n")
	c := New(in, io.Discard)
	ctx := context.Background()

	var got []string
	for {
		tok, err := c.Read(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(err)
		got = append(got, tok.String())
	}
	assert.Equal([]string{"D6", "white", "E3", "pass"}, got)

	// reading past the end keeps returning EOF
	_, err := c.Read(ctx)
	assert.Equal(io.EOF, err)
}

func TestConnReadCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := New(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Read(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestConnSend(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	c := New(strings.NewReader(""), &buf)
	assert.NoError(c.Send(MoveToken(19)))
	assert.NoError(c.Send(PassToken()))
	assert.Equal("D3\npass\n", buf.String())
}

func TestConnSendWire(t *testing.T) {
	assert := assert.New(t)
	for _, in := range []string{"d3", "D3", " d3 "} {
		p, err := game.ParsePoint(in)
		require.NoError(t, err)

		var buf bytes.Buffer
		c := New(strings.NewReader(""), &buf)
		assert.NoError(c.Send(MoveToken(p)))
		assert.NoError(c.Send(ColourToken(game.WhitePlayer)))
		assert.Equal([]byte("D3\nwhite\n"), buf.Bytes(), in)
	}

	// every move goes out as a column letter A-H followed by a row digit 1-8
	var buf bytes.Buffer
	c := New(strings.NewReader(""), &buf)
	for i := game.Point(0); i < game.Cells; i++ {
		buf.Reset()
		require.NoError(t, c.Send(MoveToken(i)))
		b := buf.Bytes()
		if assert.Len(b, 3) {
			assert.True(b[0] >= 'A' && b[0] <= 'H', "%q", b)
			assert.True(b[1] >= '1' && b[1] <= '8', "%q", b)
			assert.Equal(byte('\n'), b[2])
		}
	}
}
