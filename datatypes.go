package reversi

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gorgonia/reversi/game"
)

// Config configures an Arena.
type Config struct {
	Name string

	// Hole is the black hole of every game. Pass for none.
	Hole game.Point
	Anti bool

	// A and B are the engine kinds of the two agents, with their settings.
	A, B                 string
	ASettings, BSettings Settings

	// extensions
	OutputEncoder OutputEncoder
	Logger        zerolog.Logger
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be the websocket feed of cmd/arena.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}

// manyErr collects the errors of several encoders.
type manyErr []error

func (err manyErr) Error() string { return fmt.Sprintf("%v", []error(err)) }

// Encoders fans out to several OutputEncoders.
type Encoders []OutputEncoder

func (e Encoders) Encode(ms game.MetaState) error {
	var errs manyErr
	for _, enc := range e {
		if err := enc.Encode(ms); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (e Encoders) Flush() error {
	var errs manyErr
	for _, enc := range e {
		if err := enc.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
