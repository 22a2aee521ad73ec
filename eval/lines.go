package eval

import "github.com/gorgonia/reversi/game"

// line is one of the principal lines, listed end to end.
type line [game.Size]game.Point

// principal are the 4 edges and the 2 main diagonals.
var principal = func() (retVal [6]line) {
	for i := int8(0); i < game.Size; i++ {
		// top, left, right, bottom, then both diagonals
		retVal[0][i] = game.Coord{X: i, Y: 0}.Point()
		retVal[1][i] = game.Coord{X: 0, Y: i}.Point()
		retVal[2][i] = game.Coord{X: game.Size - 1, Y: i}.Point()
		retVal[3][i] = game.Coord{X: i, Y: game.Size - 1}.Point()
		retVal[4][i] = game.Coord{X: i, Y: i}.Point()
		retVal[5][i] = game.Coord{X: game.Size - 1 - i, Y: i}.Point()
	}
	return
}()

// Stability sums the penalties of the hanging runs of c over the principal lines.
//
// A run hangs when it starts next to an empty end of the line: the opponent may take the end cell and
// capture the run. The penalty doubles when the run is followed by a gap and then another disc of c.
func Stability(b *game.Board, c game.Colour) (retVal int) {
	for _, l := range principal {
		var cells [game.Size]game.Colour
		for i, p := range l {
			cells[i] = b[p]
		}
		retVal += hanging(cells, c)

		// and from the other end
		for i, j := 0, game.Size-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
		retVal += hanging(cells, c)
	}
	return retVal
}

func hanging(cells [game.Size]game.Colour, c game.Colour) int {
	if cells[1] != c || cells[0] != game.None {
		return 0
	}
	i := 1
	for {
		i++
		if i == game.Size-2 || cells[i] != c {
			break
		}
	}
	if i == game.Size-2 {
		return 0
	}
	if cells[i+1] == c {
		return 2 * LinePenalty
	}
	return LinePenalty
}
