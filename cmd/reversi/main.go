// Command reversi is the bot. It reads the black hole, its colour and the opponent's moves from stdin,
// and writes its own moves to stdout, one per line.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/gorgonia/reversi"
	"github.com/gorgonia/reversi/config"
	"github.com/gorgonia/reversi/protocol"
)

const version = "0.1.0"

func main() {
	var c config.Config
	if err := c.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if c.Version {
		fmt.Println(version)
		return
	}
	if err := c.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	closer, err := c.SetupLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	e, err := reversi.NewEngine(c.BotImpl, reversi.SettingsFromConfig(&c))
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}

	out := bufio.NewWriter(os.Stdout)
	conn := protocol.New(os.Stdin, out)
	conn.Logger = log.Logger

	r := reversi.NewRunner(conn, e, c.Anti(), c.NoBlackHole)
	r.Logger = log.Logger.With().Str("bot", c.BotImpl).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("bot", c.BotImpl).
		Int("max-depth", c.MaxDepth).
		Dur("time-limit", c.Timeout()).
		Bool("anti", c.Anti()).
		Bool("blackhole", !c.NoBlackHole).
		Msg("start")
	if err = r.Run(ctx); err != nil {
		log.Error().Err(err).Msg("runner")
		out.Flush()
		closer.Close()
		os.Exit(1)
	}
}
