package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Colour is the content of a cell.
type Colour int8

const (
	None Colour = iota
	Black
	White
	Hole // the black hole. It never moves, never flips and blocks rays
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		case Hole:
			fmt.Fprint(s, "Hole")
		}
	case 's': // used in board printing
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		case Hole:
			fmt.Fprint(s, "●")
		}
	}
}

// Player represents a player. It's also a colour, but only Black and White are players.
type Player Colour

const (
	BlackPlayer = Player(Black)
	WhitePlayer = Player(White)
)

// Opponent returns the other player. It panics when called on something that isn't a player.
func (p Player) Opponent() Player {
	switch p {
	case BlackPlayer:
		return WhitePlayer
	case WhitePlayer:
		return BlackPlayer
	}
	panic("Unreachable")
}

// IsPlayer returns true for Black and White.
func (p Player) IsPlayer() bool { return p == BlackPlayer || p == WhitePlayer }

// String returns the name used on the wire: "black" or "white".
func (p Player) String() string {
	switch p {
	case BlackPlayer:
		return "black"
	case WhitePlayer:
		return "white"
	}
	return "none"
}

func (p Player) Format(s fmt.State, c rune) {
	switch c {
	case 'v':
		Colour(p).Format(s, 'v')
	default:
		fmt.Fprint(s, p.String())
	}
}

// ParsePlayer parses "black" or "white".
func ParsePlayer(a string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(a)) {
	case "black":
		return BlackPlayer, nil
	case "white":
		return WhitePlayer, nil
	}
	return Player(None), errors.Errorf("Unable to parse %q as a player", a)
}

// Coord represents a (x, y) coordinate.
//
// The Coord uses a standard computer cartesian coordinates
//		- (0, 0) represents the top left, "A1"
//		- (7, 7) represents the bottom right, "H8"
type Coord struct {
	X, Y int8
}

func (c Coord) Add(other Coord) Coord { return Coord{c.X + other.X, c.Y + other.Y} }

func (c Coord) Eq(other Coord) bool { return c.X == other.X && c.Y == other.Y }

// Valid returns true when the coordinate lies on the board.
func (c Coord) Valid() bool { return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size }

// Point returns the row major index of the coordinate.
func (c Coord) Point() Point { return Point(c.Y*Size + c.X) }

// Point represents a coordinate as a single number, utilized in a rowmajor fashion.
//		- 0 represents A1, the top left
//		- 7 represents H1, the top right
//		- 8 represents A2
// 		- -1 represents the "pass" move
type Point int8

// Pass is the point used for a pass, and for "no black hole".
const Pass Point = -1

// IsPass returns true when the point represents a "pass" move
func (p Point) IsPass() bool { return p == Pass }

// Valid returns true when the point is on the board.
func (p Point) Valid() bool { return p >= 0 && p < Cells }

func (p Point) Coord() Coord { return Coord{X: int8(p) % Size, Y: int8(p) / Size} }

func (p Point) String() string {
	if !p.Valid() {
		return "pass"
	}
	c := p.Coord()
	return string([]byte{'A' + byte(c.X), '1' + byte(c.Y)})
}

// ParsePoint parses algebraic notation such as "D3". The letter is the column.
func ParsePoint(a string) (Point, error) {
	a = strings.ToUpper(strings.TrimSpace(a))
	if len(a) != 2 {
		return Pass, errors.Errorf("Unable to parse %q as a point", a)
	}
	c := Coord{X: int8(a[0]) - 'A', Y: int8(a[1]) - '1'}
	if !c.Valid() {
		return Pass, errors.Errorf("Point %q is off the board", a)
	}
	return c.Point(), nil
}

// PlayerMove is a tuple indicating the player, the target cell and the discs it flips.
type PlayerMove struct {
	Player
	Point
	Flips Bitset
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Point == other.Point && p.Flips == other.Flips
}

// IsPass returns true when the move is a pass.
func (p PlayerMove) IsPass() bool { return p.Point.IsPass() }

func (p PlayerMove) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%v@%v", p.Player, p.Point)
	if c == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%v", p.Flips.Points())
	}
}

// State is any reversi position that is able to report back on itself.
type State interface {
	Board() Board         // returns the board state
	ToMove() Player       // returns the next player to move
	Passes() int          // returns number of consecutive passes
	MoveNumber() int      // returns count of moves so far that led to this point.
	LastMove() PlayerMove // returns the last move that was made

	Score(p Player) float32             // discs of the given player
	Ended() (ended bool, winner Player) // has the game ended? if yes, then who's the winner?
}

// Hash is the xxhash of the 64 cells of a board, black hole included.
type Hash uint64

// MetaState is a State plus the information about the session it is played in.
type MetaState interface {
	Name() string // name of the match
	Epoch() int
	GameNumber() int
	Score(a Player) float64
	State() State
}
