package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// EndState is the outcome of a game.
type EndState int8

const (
	Unknown EndState = iota // the game goes on
	BlackWon
	WhiteWon
	Tie
)

func (e EndState) String() string {
	switch e {
	case Unknown:
		return "Unknown"
	case BlackWon:
		return "BlackWon"
	case WhiteWon:
		return "WhiteWon"
	case Tie:
		return "Tie"
	}
	return "UNKNOWN ENDSTATE"
}

// IsOver returns true for every terminal state.
func (e EndState) IsOver() bool { return e != Unknown }

// Won returns true if p won the game.
func (e EndState) Won(p Player) bool {
	return (e == BlackWon && p == BlackPlayer) || (e == WhiteWon && p == WhitePlayer)
}

// Winner returns the winning player, or None for ties and unfinished games.
func (e EndState) Winner() Player {
	switch e {
	case BlackWon:
		return BlackPlayer
	case WhiteWon:
		return WhitePlayer
	}
	return Player(None)
}

// Score counts the discs. In normal mode more discs wins, in anti mode fewer discs wins.
func Score(b *Board, anti bool) EndState {
	black, white := b.Count(Black), b.Count(White)
	if anti {
		black, white = white, black
	}
	switch {
	case black > white:
		return BlackWon
	case white > black:
		return WhiteWon
	}
	return Tie
}

// Wincheck reports Unknown while either player still has a move, and the disc count result otherwise.
func Wincheck(b *Board, toMove Player, anti bool) EndState {
	if b.HasMoves(toMove) || b.HasMoves(toMove.Opponent()) {
		return Unknown
	}
	return Score(b, anti)
}

var (
	ErrGameOver    = errors.New("Game is over")
	ErrIllegalMove = errors.New("Illegal move")
	ErrCannotPass  = errors.New("Cannot pass while moves are available")
)

var _ State = &Match{}

// Match is the state machine of one game: the board, whose turn it is and what happened so far.
type Match struct {
	board      Board
	nextToMove Player
	anti       bool
	passes     int

	history []PlayerMove
	status  EndState
}

// NewMatch starts a game from the standard position with Black to move.
func NewMatch(hole Point, anti bool) *Match {
	return FromBoard(NewBoard(hole), BlackPlayer, anti)
}

// FromBoard starts a match from an arbitrary position.
func FromBoard(b Board, toMove Player, anti bool) *Match {
	m := &Match{
		board:      b,
		nextToMove: toMove,
		anti:       anti,
		history:    make([]PlayerMove, 0, Cells),
	}
	m.status = Wincheck(&m.board, toMove, anti)
	return m
}

func (m *Match) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%v", m.board)
	if c == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "To move: %v Status: %v\n", m.nextToMove, m.status)
	}
}

func (m *Match) Board() Board          { return m.board }
func (m *Match) ToMove() Player        { return m.nextToMove }
func (m *Match) Anti() bool            { return m.anti }
func (m *Match) Passes() int           { return m.passes }
func (m *Match) MoveNumber() int       { return len(m.history) }
func (m *Match) Status() EndState      { return m.status }
func (m *Match) History() []PlayerMove { return m.history }

func (m *Match) LastMove() PlayerMove {
	if len(m.history) > 0 {
		return m.history[len(m.history)-1]
	}
	return PlayerMove{Player: Player(None), Point: Pass}
}

// LegalMoves lists the moves of the player to move.
func (m *Match) LegalMoves() AllowedMoves { return m.board.LegalMoves(m.nextToMove) }

// Score returns the number of discs of p.
func (m *Match) Score(p Player) float32 { return float32(m.board.Count(Colour(p))) }

// Ended checks if the game has ended. If it has, who is the winner?
func (m *Match) Ended() (ended bool, winner Player) {
	return m.status.IsOver(), m.status.Winner()
}

// Play plays the point for the player to move.
func (m *Match) Play(p Point) error {
	if m.status.IsOver() {
		return ErrGameOver
	}
	move, ok := m.LegalMoves().Find(p)
	if !ok {
		return errors.Wrapf(ErrIllegalMove, "%v cannot play %v", m.nextToMove, p)
	}
	m.apply(move)
	return nil
}

// Apply plays an already generated move. The move must belong to the player to move.
func (m *Match) Apply(move PlayerMove) error {
	if m.status.IsOver() {
		return ErrGameOver
	}
	if move.Player != m.nextToMove {
		return errors.Wrapf(ErrIllegalMove, "it is %v's turn, not %v's", m.nextToMove, move.Player)
	}
	if move.IsPass() {
		return m.Pass()
	}
	return m.Play(move.Point)
}

// Pass passes the turn. It is only allowed when the player to move has no moves.
func (m *Match) Pass() error {
	if m.status.IsOver() {
		return ErrGameOver
	}
	if m.board.HasMoves(m.nextToMove) {
		return ErrCannotPass
	}
	m.passes++
	m.nextToMove = m.nextToMove.Opponent()
	m.status = Wincheck(&m.board, m.nextToMove, m.anti)
	return nil
}

// Advance passes silently when the player to move has no moves but the game goes on.
// It returns true when a pass happened. Passes are not recorded in the history.
func (m *Match) Advance() bool {
	if m.status.IsOver() || m.board.HasMoves(m.nextToMove) {
		return false
	}
	m.passes++
	m.nextToMove = m.nextToMove.Opponent()
	m.status = Wincheck(&m.board, m.nextToMove, m.anti)
	return true
}

func (m *Match) apply(move PlayerMove) {
	m.board.Apply(move)
	m.history = append(m.history, move)
	m.passes = 0
	m.nextToMove = m.nextToMove.Opponent()
	m.status = Wincheck(&m.board, m.nextToMove, m.anti)
}

// Clone clones the match.
func (m *Match) Clone() *Match {
	retVal := *m
	retVal.history = make([]PlayerMove, len(m.history), Cells)
	copy(retVal.history, m.history)
	return &retVal
}

// Reset goes back to the starting position, keeping the black hole and the scoring mode.
func (m *Match) Reset() {
	m.board = NewBoard(m.board.Hole())
	m.nextToMove = BlackPlayer
	m.passes = 0
	m.history = m.history[:0]
	m.status = Unknown
}
