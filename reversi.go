// Package reversi puts the pieces together: engines that pick moves, the runner that plays a game
// over the move channel, and the arena where two engines play each other.
package reversi

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/gorgonia/reversi/config"
	"github.com/gorgonia/reversi/game"
	"github.com/gorgonia/reversi/mcts"
	"github.com/gorgonia/reversi/minimax"
)

// Engine picks a move for the player to move. It is only asked when that player has a legal move.
type Engine interface {
	BestMove(ctx context.Context, m *game.Match) (game.PlayerMove, error)
}

// Settings is what the engines are built from.
type Settings struct {
	Anti bool

	// minimax
	Depth  int
	Parity bool

	// mcts and mcts_basic
	Timeout     time.Duration
	Exploration float32
	Budget      int
	Seed        int64
}

func DefaultSettings() Settings {
	mc := mcts.DefaultConfig()
	mm := minimax.DefaultConfig()
	return Settings{
		Anti:        true,
		Depth:       mm.Depth,
		Parity:      mm.Parity,
		Timeout:     mc.Timeout,
		Exploration: mc.Exploration,
	}
}

// SettingsFromConfig translates the command line configuration.
func SettingsFromConfig(c *config.Config) Settings {
	return Settings{
		Anti:        c.Anti(),
		Depth:       c.MaxDepth,
		Parity:      c.Parity,
		Timeout:     c.Timeout(),
		Exploration: float32(c.Exploration),
		Seed:        c.Seed,
	}
}

func (s Settings) minimax() minimax.Config {
	return minimax.Config{Depth: s.Depth, Anti: s.Anti, Parity: s.Parity}
}

func (s Settings) mcts() mcts.Config {
	return mcts.Config{
		Exploration: s.Exploration,
		Timeout:     s.Timeout,
		Budget:      s.Budget,
		Seed:        s.Seed,
		Anti:        s.Anti,
	}
}

// NewEngine builds the engine named kind, one of config.BotImpls.
func NewEngine(kind string, s Settings) (Engine, error) {
	switch kind {
	case config.Minimax:
		conf := s.minimax()
		if !conf.IsValid() {
			return nil, errors.Errorf("Invalid minimax configuration %+v", conf)
		}
		return minimaxEngine{conf}, nil
	case config.MCTS, config.MCTSBasic:
		conf := s.mcts()
		if !conf.IsValid() {
			return nil, errors.Errorf("Invalid mcts configuration %+v", conf)
		}
		if kind == config.MCTSBasic {
			return monteCarlo{mcts.NewFlat(conf)}, nil
		}
		return monteCarlo{mcts.New(conf)}, nil
	}
	return nil, errors.Errorf("Unknown engine %q", kind)
}

type minimaxEngine struct {
	conf minimax.Config
}

func (e minimaxEngine) BestMove(ctx context.Context, m *game.Match) (game.PlayerMove, error) {
	res, err := minimax.Search(ctx, m.Board(), m.ToMove(), e.conf)
	if err != nil {
		return game.PlayerMove{Point: game.Pass}, errors.WithMessage(err, "minimax")
	}
	return res.Move, nil
}

// searcher is implemented by both the tree search and flat Monte Carlo.
type searcher interface {
	Search(b game.Board, p game.Player) (mcts.Result, error)
}

type monteCarlo struct {
	searcher
}

// BestMove runs a time boxed search. The search itself cannot be interrupted, so the context is
// only checked before starting.
func (e monteCarlo) BestMove(ctx context.Context, m *game.Match) (game.PlayerMove, error) {
	if err := ctx.Err(); err != nil {
		return game.PlayerMove{Point: game.Pass}, err
	}
	res, err := e.Search(m.Board(), m.ToMove())
	if err != nil {
		return game.PlayerMove{Point: game.Pass}, errors.WithMessage(err, "mcts")
	}
	return res.Move, nil
}
