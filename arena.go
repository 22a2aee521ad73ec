package reversi

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gorgonia/reversi/game"
)

// Arena is where two agents play each other.
type Arena struct {
	game *game.Match
	A, B *Agent

	// state
	currentPlayer *Agent
	logger        zerolog.Logger
	enc           OutputEncoder

	name       string
	epoch      int // which run of games is this in
	gameNumber int // which game is this in

	Statistics
}

// MakeArena makes an arena given a configuration. The scoring mode of the arena overrides the one in the settings.
func MakeArena(conf Config) (Arena, error) {
	conf.ASettings.Anti = conf.Anti
	conf.BSettings.Anti = conf.Anti
	a, err := NewEngine(conf.A, conf.ASettings)
	if err != nil {
		return Arena{}, errors.WithMessage(err, "agent A")
	}
	b, err := NewEngine(conf.B, conf.BSettings)
	if err != nil {
		return Arena{}, errors.WithMessage(err, "agent B")
	}
	if conf.Hole.Valid() && game.NewBoard(game.Pass)[conf.Hole] != game.None {
		return Arena{}, errors.Errorf("The black hole cannot be placed on %v", conf.Hole)
	}

	name := conf.Name
	if name == "" {
		name = conf.A + " vs " + conf.B
	}

	return Arena{
		game:       game.NewMatch(conf.Hole, conf.Anti),
		A:          NewAgent("A", a),
		B:          NewAgent("B", b),
		logger:     conf.Logger,
		enc:        conf.OutputEncoder,
		name:       name,
		Statistics: makeStatistics(),
	}, nil
}

func NewArena(conf Config) (*Arena, error) {
	ar, err := MakeArena(conf)
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

// Play plays a game, and returns the winner. If it is a draw, the returned player is None.
//
// Agent A plays black in even numbered games and white in odd numbered games.
func (a *Arena) Play(ctx context.Context) (winner game.Player, err error) {
	if a.gameNumber%2 == 0 {
		a.A.Player = game.BlackPlayer
		a.B.Player = game.WhitePlayer
	} else {
		a.A.Player = game.WhitePlayer
		a.B.Player = game.BlackPlayer
	}

	logger := a.logger.With().Int("game", a.gameNumber).Logger()
	logger.Info().Str("black", a.agentFor(game.BlackPlayer).name).Msg("start-game")

	var ended bool
	for ended, winner = a.game.Ended(); !ended; ended, winner = a.game.Ended() {
		if a.game.Advance() {
			logger.Debug().Str("player", a.game.ToMove().Opponent().String()).Msg("pass")
			continue
		}
		a.currentPlayer = a.agentFor(a.game.ToMove())

		var best game.PlayerMove
		if best, err = a.currentPlayer.Search(ctx, a.game); err != nil {
			return game.Player(game.None), errors.WithMessagef(err, "game %d, agent %v", a.gameNumber, a.currentPlayer.name)
		}
		if err = a.game.Apply(best); err != nil {
			return game.Player(game.None), errors.WithMessagef(err, "game %d, agent %v", a.gameNumber, a.currentPlayer.name)
		}
		logger.Debug().
			Str("agent", a.currentPlayer.name).
			Str("player", best.Player.String()).
			Str("move", best.Point.String()).
			Msg("move")

		if a.enc != nil {
			if err = a.enc.Encode(a); err != nil {
				logger.Warn().Err(err).Msg("encode")
			}
		}
	}

	switch winner {
	case game.Player(game.None):
		a.A.Draw++
		a.B.Draw++
	case a.A.Player:
		a.A.Wins++
		a.B.Loss++
	case a.B.Player:
		a.B.Wins++
		a.A.Loss++
	}
	logger.Info().
		Str("winner", winner.String()).
		Float32("black", a.game.Score(game.BlackPlayer)).
		Float32("white", a.game.Score(game.WhitePlayer)).
		Msg("end-game")
	return winner, nil
}

// Run plays games games, and records the standing of both agents after each of them.
func (a *Arena) Run(ctx context.Context, games int) error {
	a.A.resetStats()
	a.B.resetStats()
	start := time.Now()
	for a.gameNumber = 0; a.gameNumber < games; a.gameNumber++ {
		if _, err := a.Play(ctx); err != nil {
			return err
		}
		a.update(a.A)
		a.update(a.B)
		a.game.Reset()
		runtime.GC()
	}
	a.logger.Info().
		Str("name", a.name).
		Int("games", games).
		Float32("a-wins", a.A.Wins).
		Float32("b-wins", a.B.Wins).
		Float32("draws", a.A.Draw).
		Dur("a-mean-move", a.A.MeanThinkingTime()).
		Dur("b-mean-move", a.B.MeanThinkingTime()).
		Dur("elapsed", time.Since(start)).
		Msg("arena-done")
	a.epoch++

	if a.enc != nil {
		return a.enc.Flush()
	}
	return nil
}

func (a *Arena) agentFor(p game.Player) *Agent {
	if a.A.Player == p {
		return a.A
	}
	return a.B
}

func (a *Arena) Epoch() int                  { return a.epoch }
func (a *Arena) GameNumber() int             { return a.gameNumber }
func (a *Arena) Name() string                { return a.name }
func (a *Arena) Score(p game.Player) float64 { return float64(a.game.Score(p)) }
func (a *Arena) State() game.State           { return a.game }

var _ game.MetaState = &Arena{}
