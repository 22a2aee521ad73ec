package reversi

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gorgonia/reversi/game"
	"github.com/gorgonia/reversi/protocol"
)

// Runner plays one game over the move channel.
//
// The channel first carries the black hole (unless it is disabled) and the colour of the bot. After that
// the bot writes its own moves, and reads the moves of the opponent. A player without a move
// sends "pass".
type Runner struct {
	Conn   *protocol.Conn
	Engine Engine

	Anti        bool
	NoBlackHole bool
	Logger      zerolog.Logger

	me    game.Player
	match *game.Match
}

func NewRunner(conn *protocol.Conn, e Engine, anti, noBlackHole bool) *Runner {
	return &Runner{
		Conn:        conn,
		Engine:      e,
		Anti:        anti,
		NoBlackHole: noBlackHole,
		Logger:      zerolog.Nop(),
	}
}

// Match returns the game being played. It is nil before the set up is read.
func (r *Runner) Match() *game.Match { return r.match }

// Player returns the colour of the bot.
func (r *Runner) Player() game.Player { return r.me }

// Run plays until the game is over.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.setup(ctx); err != nil {
		return err
	}
	return r.run(ctx)
}

// run is the game loop. It expects the set up to be done.
func (r *Runner) run(ctx context.Context) error {
	m := r.match
	for {
		if ended, winner := m.Ended(); ended {
			r.report(winner)
			return nil
		}
		own := m.ToMove() == r.me
		if len(m.LegalMoves()) == 0 {
			if own {
				if err := r.Conn.Send(protocol.PassToken()); err != nil {
					return err
				}
			} else if _, err := r.Conn.Read(ctx); err != nil {
				// the opponent's pass. Whatever it says, it cannot move
				return errors.WithMessage(err, "Waiting for the opponent to pass")
			}
			m.Advance()
			continue
		}

		var err error
		if own {
			err = r.play(ctx)
		} else {
			err = r.opponent(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (r *Runner) setup(ctx context.Context) error {
	hole := game.Pass
	if !r.NoBlackHole {
		tok, err := r.Conn.Read(ctx)
		if err != nil {
			return errors.WithMessage(err, "Reading the black hole")
		}
		if tok.Kind != protocol.Move {
			return errors.Errorf("Expected the black hole, got %v", tok)
		}
		if game.NewBoard(game.Pass)[tok.Point] != game.None {
			return errors.Errorf("The black hole cannot be placed on %v", tok.Point)
		}
		hole = tok.Point
	}

	tok, err := r.Conn.Read(ctx)
	if err != nil {
		return errors.WithMessage(err, "Reading the colour")
	}
	if tok.Kind != protocol.Colour {
		return errors.Errorf("Expected a colour, got %v", tok)
	}
	r.me = tok.Player
	r.match = game.NewMatch(hole, r.Anti)

	r.Logger.Info().
		Str("hole", hole.String()).
		Str("colour", r.me.String()).
		Bool("anti", r.Anti).
		Msg("begin")
	return nil
}

func (r *Runner) play(ctx context.Context) error {
	start := time.Now()
	move, err := r.Engine.BestMove(ctx, r.match)
	if err != nil {
		return err
	}
	if err = r.match.Apply(move); err != nil {
		return errors.WithMessage(err, "The engine played an illegal move")
	}
	r.Logger.Debug().
		Str("move", move.Point.String()).
		Dur("elapsed", time.Since(start)).
		Msg("my-move")
	return r.Conn.Send(protocol.MoveToken(move.Point))
}

// opponent reads until the opponent sends a legal move.
func (r *Runner) opponent(ctx context.Context) error {
	for {
		tok, err := r.Conn.Read(ctx)
		if err != nil {
			return errors.WithMessage(err, "Waiting for the opponent's move")
		}
		if tok.Kind != protocol.Move {
			r.Logger.Warn().Str("token", tok.String()).Msg("expected-a-move")
			continue
		}
		if err = r.match.Play(tok.Point); err != nil {
			r.Logger.Warn().Err(err).Msg("illegal-move")
			continue
		}
		r.Logger.Debug().Str("move", tok.Point.String()).Msg("their-move")
		return nil
	}
}

func (r *Runner) report(winner game.Player) {
	m := r.match
	r.Logger.Info().
		Str("winner", winner.String()).
		Bool("won", winner == r.me).
		Float32("balance", DiscBalance(m.Board(), r.me)).
		Float32("black", m.Score(game.BlackPlayer)).
		Float32("white", m.Score(game.WhitePlayer)).
		Int("moves", m.MoveNumber()).
		Msg("game-over")
}
