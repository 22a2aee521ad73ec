package game

import (
	"fmt"
	"math/bits"
	"strings"
	"unicode"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

const (
	Size  = 8
	Cells = Size * Size
)

// directions are the 8 compass rays, clockwise starting from north.
var directions = [8]Coord{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Bitset is a set of points. Bit i is Point(i).
type Bitset uint64

func (b Bitset) Has(p Point) bool      { return b&(1<<uint(p)) != 0 }
func (b Bitset) Set(p Point) Bitset    { return b | 1<<uint(p) }
func (b Bitset) Union(o Bitset) Bitset { return b | o }
func (b Bitset) Len() int              { return bits.OnesCount64(uint64(b)) }

// Points lists the members in ascending order.
func (b Bitset) Points() []Point {
	retVal := make([]Point, 0, b.Len())
	for x := uint64(b); x != 0; x &= x - 1 {
		retVal = append(retVal, Point(bits.TrailingZeros64(x)))
	}
	return retVal
}

// AllowedMoves is the list of moves available to one player, in the order they were found.
type AllowedMoves []PlayerMove

// Find returns the move targeting p.
func (a AllowedMoves) Find(p Point) (PlayerMove, bool) {
	for _, m := range a {
		if m.Point == p {
			return m, true
		}
	}
	return PlayerMove{Point: Pass}, false
}

// Board is the 8x8 board. It is a value: assigning it copies it.
type Board [Cells]Colour

// NewBoard creates the starting position. hole may be Pass for a board without a black hole.
func NewBoard(hole Point) Board {
	var b Board
	b[Coord{3, 3}.Point()] = White
	b[Coord{4, 4}.Point()] = White
	b[Coord{3, 4}.Point()] = Black
	b[Coord{4, 3}.Point()] = Black
	if hole.Valid() {
		if b[hole] != None {
			panic(fmt.Sprintf("black hole %v placed on a starting disc", hole))
		}
		b[hole] = Hole
	}
	return b
}

func (b Board) At(c Coord) Colour { return b[c.Point()] }

// Hole returns the position of the black hole, or Pass.
func (b Board) Hole() Point {
	for i, c := range b {
		if c == Hole {
			return Point(i)
		}
	}
	return Pass
}

// Count counts the cells of the given colour.
func (b Board) Count(c Colour) (retVal int) {
	for _, v := range b {
		if v == c {
			retVal++
		}
	}
	return
}

// LegalMoves generates every move available to p. Flip runs reaching the same target from
// different directions are merged into one move.
func (b Board) LegalMoves(p Player) AllowedMoves {
	if !p.IsPlayer() {
		panic(fmt.Sprintf("LegalMoves called for %v", p))
	}
	own := Colour(p)
	opp := Colour(p.Opponent())

	var retVal AllowedMoves
	var index [Cells]int8 // position+1 of a target in retVal
	for i, c := range b {
		if c != own {
			continue
		}
		from := Point(i).Coord()
		for _, d := range directions {
			var run Bitset
			for cur := from.Add(d); cur.Valid(); cur = cur.Add(d) {
				pt := cur.Point()
				v := b[pt]
				if v == opp {
					run = run.Set(pt)
					continue
				}
				if v == None && run != 0 {
					if at := index[pt]; at > 0 {
						retVal[at-1].Flips = retVal[at-1].Flips.Union(run)
					} else {
						retVal = append(retVal, PlayerMove{Player: p, Point: pt, Flips: run})
						index[pt] = int8(len(retVal))
					}
				}
				break // empty, own colour or the hole all end the ray
			}
		}
	}
	return retVal
}

// HasMoves is LegalMoves without the allocation.
func (b Board) HasMoves(p Player) bool {
	own := Colour(p)
	opp := Colour(p.Opponent())
	for i, c := range b {
		if c != own {
			continue
		}
		from := Point(i).Coord()
		for _, d := range directions {
			var seen bool
			for cur := from.Add(d); cur.Valid(); cur = cur.Add(d) {
				v := b[cur.Point()]
				if v == opp {
					seen = true
					continue
				}
				if v == None && seen {
					return true
				}
				break
			}
		}
	}
	return false
}

// Apply plays the move on the board. The move must come from LegalMoves on this very board.
func (b *Board) Apply(m PlayerMove) {
	if !m.Point.Valid() || b[m.Point] != None || m.Flips == 0 {
		panic(fmt.Sprintf("illegal move %+v on\n%s", m, b))
	}
	own := Colour(m.Player)
	opp := Colour(m.Player.Opponent())
	b[m.Point] = own
	for x := uint64(m.Flips); x != 0; x &= x - 1 {
		pt := bits.TrailingZeros64(x)
		if b[pt] != opp {
			panic(fmt.Sprintf("move %+v flips %v which is %v", m, Point(pt), b[pt]))
		}
		b[pt] = own
	}
}

// WithMove returns a copy of the board with the move applied.
func (b Board) WithMove(m PlayerMove) Board {
	b.Apply(m)
	return b
}

// Hash hashes the board.
func (b Board) Hash() Hash {
	var buf [Cells]byte
	for i, c := range b {
		buf[i] = byte(c)
	}
	return Hash(xxhash.Sum64(buf[:]))
}

func (b Board) Format(s fmt.State, c rune) {
	for i, v := range b {
		if i%Size == 0 {
			fmt.Fprint(s, "⎢ ")
		}
		fmt.Fprintf(s, "%s ", v)
		if (i+1)%Size == 0 {
			fmt.Fprint(s, "⎥\n")
		}
	}
}

// ParseBoard reads a board written with 'B' for black, 'W' for white, 'H' for the hole and '_' for
// empty cells. Whitespace is ignored.
func ParseBoard(a string) (Board, error) {
	var b Board
	var i int
	for _, r := range a {
		if unicode.IsSpace(r) {
			continue
		}
		if i >= Cells {
			return b, errors.New("Too many cells")
		}
		switch unicode.ToUpper(r) {
		case 'B':
			b[i] = Black
		case 'W':
			b[i] = White
		case 'H':
			b[i] = Hole
		case '_', '.':
			b[i] = None
		default:
			return b, errors.Errorf("Unexpected %q at cell %d", r, i)
		}
		i++
	}
	if i != Cells {
		return b, errors.Errorf("Expected %d cells, got %d", Cells, i)
	}
	if strings.Count(strings.ToUpper(a), "H") > 1 {
		return b, errors.New("More than one black hole")
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics.
func MustParseBoard(a string) Board {
	b, err := ParseBoard(a)
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return b
}
