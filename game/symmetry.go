package game

// Canonical are the 10 cells of the octant every cell folds into under Unmirror8.
var Canonical = [10]Point{0, 1, 2, 3, 9, 10, 11, 18, 19, 27}

// Unmirror4 reflects a coordinate across the two quadrant axes so that it lands in the top left quadrant.
func Unmirror4(c Coord) Coord {
	if c.X >= Size/2 {
		c.X = Size - 1 - c.X
	}
	if c.Y >= Size/2 {
		c.Y = Size - 1 - c.Y
	}
	return c
}

// Unmirror8 is Unmirror4 followed by a reflection across the diagonal, so that X >= Y.
func Unmirror8(c Coord) Coord {
	c = Unmirror4(c)
	if c.X < c.Y {
		c.X, c.Y = c.Y, c.X
	}
	return c
}
