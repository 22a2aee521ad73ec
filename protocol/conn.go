package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Conn is one end of the channel. Reading happens on its own goroutine so that a read can be
// abandoned when its context is cancelled.
type Conn struct {
	r io.Reader
	w io.Writer

	once  sync.Once
	lines chan string
	err   error // set before lines is closed

	wmu sync.Mutex

	Logger zerolog.Logger
}

func New(r io.Reader, w io.Writer) *Conn {
	return &Conn{
		r:      r,
		w:      w,
		Logger: zerolog.Nop(),
	}
}

// Start starts the reader goroutine and returns the raw lines. Blank lines are dropped.
// The channel is closed when the reader is exhausted. Calling Start again returns the same channel.
func (c *Conn) Start() <-chan string {
	c.once.Do(func() {
		c.lines = make(chan string)
		go c.start()
	})
	return c.lines
}

func (c *Conn) start() {
	defer close(c.lines)
	s := bufio.NewScanner(c.r)
	for s.Scan() {
		line := preprocess(s.Text())
		if line == "" {
			continue
		}
		c.lines <- line
	}
	c.err = s.Err()
}

// Read returns the next well formed token. Malformed lines are logged and skipped.
// At the end of the input it returns io.EOF.
func (c *Conn) Read(ctx context.Context) (Token, error) {
	lines := c.Start()
	for {
		select {
		case <-ctx.Done():
			return Token{}, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if c.err != nil {
					return Token{}, errors.Wrap(c.err, "Unable to read from the channel")
				}
				return Token{}, io.EOF
			}
			t, err := ParseToken(line)
			if err != nil {
				c.Logger.Warn().Err(err).Str("line", line).Msg("skip-malformed-line")
				continue
			}
			c.Logger.Debug().Str("token", t.String()).Msg("recv")
			return t, nil
		}
	}
}

// Send writes one token followed by a newline.
func (c *Conn) Send(t Token) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if _, err := fmt.Fprintln(c.w, t.String()); err != nil {
		return errors.WithMessage(err, "Unable to send "+t.String())
	}
	if f, ok := c.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return errors.WithMessage(err, "Unable to flush")
		}
	}
	c.Logger.Debug().Str("token", t.String()).Msg("send")
	return nil
}
