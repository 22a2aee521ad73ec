// Command arena plays two engines against each other. The games are streamed over a websocket at /ws,
// and can be rendered as a gif. The standings after every game are written as csv.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"

	"github.com/gorgonia/reversi"
	"github.com/gorgonia/reversi/config"
	"github.com/gorgonia/reversi/encoding/gif"
	"github.com/gorgonia/reversi/game"
)

const version = "0.1.0"

type options struct {
	config.Config

	games   int
	addr    string
	gifFile string
	csvFile string
	a, b    string
	hole    string
	budget  int
}

func parse(args []string) (*options, error) {
	o := new(options)
	fs := flag.NewFlagSet("arena", flag.ContinueOnError)
	o.Register(fs)
	fs.IntVar(&o.games, "games", 10, "number of games")
	fs.StringVar(&o.addr, "addr", "", "serve the websocket feed on this address, e.g. :8080")
	fs.StringVar(&o.gifFile, "gif", "", "render the games into this gif")
	fs.StringVar(&o.csvFile, "csv", "", "write the win rates into this csv")
	fs.StringVar(&o.a, "a", config.Minimax, "engine of agent A")
	fs.StringVar(&o.b, "b", config.MCTS, "engine of agent B")
	fs.StringVar(&o.hole, "hole", "pass", "black hole of every game. pass for none")
	fs.IntVar(&o.budget, "budget", 0, "maximum number of playouts per move (for MCTS). 0 is unlimited")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, o.Validate()
}

func (o *options) arena() (reversi.Config, error) {
	hole := game.Pass
	if o.hole != "pass" && !o.NoBlackHole {
		var err error
		if hole, err = game.ParsePoint(o.hole); err != nil {
			return reversi.Config{}, err
		}
	}
	s := reversi.SettingsFromConfig(&o.Config)
	s.Budget = o.budget
	return reversi.Config{
		Hole:      hole,
		Anti:      o.Anti(),
		A:         o.a,
		B:         o.b,
		ASettings: s,
		BSettings: s,
		Logger:    log.Logger,
	}, nil
}

func main() {
	o, err := parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if o.Version {
		fmt.Println(version)
		return
	}
	closer, err := o.SetupLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	conf, err := o.arena()
	if err != nil {
		log.Fatal().Err(err).Msg("bad-arena")
	}

	var encs reversi.Encoders
	if o.addr != "" {
		feed := NewEncoder(log.Logger)
		encs = append(encs, feed)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Recoverer)
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "%d clients\n", feed.Clients())
		})
		r.Handle("/ws", feed)

		srv := &http.Server{Addr: o.addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info().Str("addr", o.addr).Msg("serving")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("serve")
			}
		}()
		defer srv.Close()
	}
	if o.gifFile != "" {
		f, err := os.Create(o.gifFile)
		if err != nil {
			log.Fatal().Err(err).Msg("gif")
		}
		defer f.Close()
		encs = append(encs, gif.NewGifEncoder(f, 600, 600))
	}
	if len(encs) > 0 {
		conf.OutputEncoder = encs
	}

	a, err := reversi.NewArena(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-arena")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = a.Run(ctx, o.games); err != nil {
		log.Error().Err(err).Msg("arena")
	}
	if o.csvFile != "" {
		if err := a.Dump(o.csvFile); err != nil {
			log.Error().Err(err).Msg("csv")
		}
	}
}
