package game

import (
	"math/rand"

	mt64 "github.com/bszcz/mt19937_64"
	"lukechampine.com/frand"
)

// Rand is the randomness playouts need.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a generator for playouts. A zero seed gives a fast, unseeded generator;
// any other seed gives a reproducible Mersenne Twister.
func NewRand(seed int64) Rand {
	if seed == 0 {
		return frand.New()
	}
	src := mt64.New()
	src.Seed(seed)
	return rand.New(src)
}

// RandomMove picks a uniformly random move. moves must not be empty.
func RandomMove(r Rand, moves AllowedMoves) PlayerMove { return moves[r.Intn(len(moves))] }

// Playout plays uniformly random moves from b until the game is over, passing automatically
// whenever the player to move has nothing to play.
func Playout(r Rand, b Board, toMove Player, anti bool) EndState {
	for {
		moves := b.LegalMoves(toMove)
		if len(moves) == 0 {
			if !b.HasMoves(toMove.Opponent()) {
				return Score(&b, anti)
			}
			toMove = toMove.Opponent()
			continue
		}
		b.Apply(RandomMove(r, moves))
		toMove = toMove.Opponent()
	}
}
