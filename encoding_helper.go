package reversi

import (
	"gorgonia.org/vecf32"

	"github.com/gorgonia/reversi/game"
)

// EncodeBoard encodes black as 1, white as -1 for each disc placed. Empty cells and the black hole are 0.
// When the perspective is White the signs are swapped, so that the player's own discs are always positive.
func EncodeBoard(b game.Board, perspective game.Player, prealloc []float32) []float32 {
	if len(prealloc) != len(b) {
		prealloc = make([]float32, len(b))
	}

	for i := range b {
		switch b[i] {
		case game.Black:
			prealloc[i] = 1
		case game.White:
			prealloc[i] = -1
		default:
			prealloc[i] = 0
		}
	}
	if perspective == game.WhitePlayer {
		vecf32.Scale(prealloc, -1)
	}
	return prealloc
}

// DiscBalance is the number of discs of the perspective minus the opponent's.
func DiscBalance(b game.Board, perspective game.Player) float32 {
	return vecf32.Sum(EncodeBoard(b, perspective, nil))
}
