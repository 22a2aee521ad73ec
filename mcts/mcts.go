// Package mcts implements a time boxed Monte Carlo tree search.
//
// Every legal move at the root gets its own tree, searched by its own goroutine, so no two
// goroutines ever touch the same node. When the clock runs out every tree is told to stop and
// the root move whose tree has the best win ratio is played.
package mcts

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// ErrNoMoves is returned when the player to search for has nothing to play.
var ErrNoMoves = errors.New("No legal moves to search")

// Config is the structure to configure the search.
type Config struct {
	// Exploration is the C in the UCT formula.
	Exploration float32
	Timeout     time.Duration

	Budget int   // iteration budget per tree. 0 means the timeout alone decides
	Seed   int64 // 0 for unseeded playouts
	Anti   bool
}

func DefaultConfig() Config {
	return Config{
		Exploration: math32.Sqrt2,
		Timeout:     4950 * time.Millisecond,
	}
}

func (c Config) IsValid() bool {
	return c.Exploration >= 0 && (c.Timeout > 0 || c.Budget > 0)
}
