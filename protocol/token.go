// Package protocol implements the line based channel the bot talks over.
//
// Every line carries one token: "pass", a colour ("black" or "white"), or a coordinate in
// algebraic notation ("A1" to "H8", the letter is the column). Coordinates are written in upper case.
// When reading, case and surrounding space are ignored.
package protocol

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gorgonia/reversi/game"
)

// Kind is the kind of a token.
type Kind byte

const (
	Move Kind = iota
	Pass
	Colour
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "Move"
	case Pass:
		return "Pass"
	case Colour:
		return "Colour"
	}
	return "UNKNOWN KIND"
}

// Token is one line of the channel.
type Token struct {
	Kind
	Point  game.Point  // only for Move
	Player game.Player // only for Colour
}

func MoveToken(p game.Point) Token    { return Token{Kind: Move, Point: p} }
func PassToken() Token                { return Token{Kind: Pass, Point: game.Pass} }
func ColourToken(p game.Player) Token { return Token{Kind: Colour, Point: game.Pass, Player: p} }

// String returns the token as it is written on the wire.
func (t Token) String() string {
	switch t.Kind {
	case Move:
		return t.Point.String()
	case Pass:
		return "pass"
	case Colour:
		return t.Player.String()
	}
	panic("Unreachable")
}

func (t Token) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v(%s)", t.Kind, t.String()) }

// ParseToken parses one line.
func ParseToken(a string) (Token, error) {
	a = preprocess(a)
	switch a {
	case "pass":
		return PassToken(), nil
	case "black":
		return ColourToken(game.BlackPlayer), nil
	case "white":
		return ColourToken(game.WhitePlayer), nil
	}
	p, err := game.ParsePoint(a)
	if err != nil {
		return Token{}, errors.Errorf("Unknown token %q", a)
	}
	return MoveToken(p), nil
}

func preprocess(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}
