//go:build debug
// +build debug

package mcts

import (
	"bytes"

	"github.com/rs/zerolog"
)

// lumberjack keeps a per tree trace of the search. A tree is only touched by one goroutine,
// so the buffer needs no locking.
type lumberjack struct {
	buf *bytes.Buffer
	zl  zerolog.Logger
}

func makeLumberJack() lumberjack {
	buf := new(bytes.Buffer)
	return lumberjack{
		buf: buf,
		zl:  zerolog.New(buf).Level(zerolog.TraceLevel),
	}
}

func (l *lumberjack) log(msg string, args ...interface{}) {
	l.zl.Trace().Msgf(msg, args...)
}

func (l lumberjack) Log() string { return l.buf.String() }
