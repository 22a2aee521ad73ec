// Package config holds the command line configuration of the binaries. Every flag can also be set
// through its environment variable: --max-depth reads MAX_DEPTH, --no-anti reads NO_ANTI and so on.
package config

import (
	"time"

	"github.com/namsral/flag"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// The engines a bot can run.
const (
	Minimax   = "minimax"
	MCTSBasic = "mcts_basic"
	MCTS      = "mcts"
)

var BotImpls = []string{Minimax, MCTSBasic, MCTS}

type Config struct {
	MaxDepth    int
	Log         string // log file. Empty logs to stderr
	NoAnti      bool
	NoBlackHole bool
	TimeLimit   int // milliseconds
	BotImpl     string
	Exploration float64
	Seed        int64
	Parity      bool
	Debug       bool
	Version     bool
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("reversi", flag.ContinueOnError)
	c.Register(fs)
	return fs.Parse(args)
}

// Register adds the flags to fs, for binaries that have flags of their own.
func (c *Config) Register(fs *flag.FlagSet) {
	fs.IntVar(&c.MaxDepth, "max-depth", 4, "maximum tree depth (only for minimax)")
	fs.StringVar(&c.Log, "log", "", "file for logging")
	fs.BoolVar(&c.NoAnti, "no-anti", false, "play regular reversi")
	fs.BoolVar(&c.NoBlackHole, "no-blackhole", false, "disable the black hole")
	fs.IntVar(&c.TimeLimit, "time-limit", 4950, "time limit of a move in milliseconds (for MCTS)")
	fs.StringVar(&c.BotImpl, "bot-impl", MCTS, "engine to run: minimax, mcts_basic or mcts")
	fs.Float64Var(&c.Exploration, "exploration", 1.4142135, "exploration constant of the UCT formula")
	fs.Int64Var(&c.Seed, "seed", 0, "seed of the playouts. 0 is unseeded")
	fs.BoolVar(&c.Parity, "parity", true, "use the parity adjustment in the minimax evaluation")
	fs.BoolVar(&c.Debug, "debug", false, "log at debug level")
	fs.BoolVar(&c.Version, "version", false, "show version")
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if !lo.Contains(BotImpls, c.BotImpl) {
		return errors.Errorf("Unknown bot implementation %q. Expected one of %v", c.BotImpl, BotImpls)
	}
	if c.MaxDepth < 1 {
		return errors.Errorf("Max depth must be at least 1. Got %d", c.MaxDepth)
	}
	if c.TimeLimit <= 0 {
		return errors.Errorf("Time limit must be positive. Got %dms", c.TimeLimit)
	}
	if c.Exploration < 0 {
		return errors.Errorf("Exploration must not be negative. Got %v", c.Exploration)
	}
	return nil
}

// Timeout is the time limit of a move.
func (c *Config) Timeout() time.Duration { return time.Duration(c.TimeLimit) * time.Millisecond }

// Anti returns true when the fewest discs win.
func (c *Config) Anti() bool { return !c.NoAnti }
