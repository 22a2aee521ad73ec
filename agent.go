package reversi

import (
	"context"
	"sync"
	"time"

	"github.com/gorgonia/reversi/game"
)

// An Agent is a player, AI or Human
type Agent struct {
	Engine
	Player game.Player

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name    string
	actions int
	thought time.Duration // time spent in Search
}

func NewAgent(name string, e Engine) *Agent {
	return &Agent{
		Engine: e,
		name:   name,
	}
}

func (a *Agent) Name() string { return a.name }

// Search asks the engine for a move, and keeps track of the time it took.
func (a *Agent) Search(ctx context.Context, m *game.Match) (game.PlayerMove, error) {
	start := time.Now()
	move, err := a.BestMove(ctx, m)
	a.Lock()
	a.actions++
	a.thought += time.Since(start)
	a.Unlock()
	return move, err
}

// MeanThinkingTime is the average time the agent took per move.
func (a *Agent) MeanThinkingTime() time.Duration {
	a.Lock()
	defer a.Unlock()
	if a.actions == 0 {
		return 0
	}
	return a.thought / time.Duration(a.actions)
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.actions = 0
	a.thought = 0
	a.Unlock()
}
