package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"othello/agent"
	"othello/communication/client"
	"othello/communication/server"
	"othello/engine"
	"othello/experiments"
	"othello/gamemaster"
	"othello/meta"
	"othello/player"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	seed        uint64
	remoteBlack string
	remoteWhite string
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file, defaults apply when empty")
	mode := flag.String("mode", "play", "One of play, referee, agent, selfplay, experiment")
	debug := flag.Bool("debug", false, "Log at debug level")
	seed := flag.Uint64("seed", 0, "Seed for the opening choice, 0 draws one from the clock")
	remoteBlack := flag.String("remote-black", "", "Decision server URL playing black in selfplay")
	remoteWhite := flag.String("remote-white", "", "Decision server URL playing white in selfplay")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	config, err := meta.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{seed: *seed, remoteBlack: *remoteBlack, remoteWhite: *remoteWhite}
	if err := run(ctx, *mode, config, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Str("mode", *mode).Msg("exiting")
	}
}

func run(ctx context.Context, mode string, config meta.Config, opts options) error {
	switch mode {
	case "play":
		a, err := config.Agent(opts.seed)
		if err != nil {
			return err
		}
		comm := client.NewHTTPClient(config.Server.URL, config.Server.Timeout)
		return player.NewPlayer(config.Server.Player, config.Server.Session, comm, a, config.Intervals()).Run(ctx)

	case "referee":
		referee := gamemaster.NewLocal(config.Server.Session)
		return serve(ctx, config.Server.Listen, server.New(referee))

	case "agent":
		a, err := config.Agent(opts.seed)
		if err != nil {
			return err
		}
		return serve(ctx, config.Server.Listen, agent.NewServer(a))

	case "selfplay":
		return selfPlay(ctx, config, opts)

	case "experiment":
		e, err := experiments.Named(config.Experiment.Name, config.Experiment.Games, config.Phases)
		if err != nil {
			return err
		}
		e.Parallelism = config.Experiment.Parallelism
		dir, err := e.RunAndStore(ctx, config.Experiment.Output)
		if err != nil {
			return err
		}
		log.Info().Str("dir", dir).Msg("experiment stored")
		return nil

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func selfPlay(ctx context.Context, config meta.Config, opts options) error {
	newAgent := func(url string, seed uint64) (agent.Agent, error) {
		if url != "" {
			return engine.NewRemoteAgent(url, config.Server.Timeout), nil
		}
		return config.Agent(seed)
	}
	black, err := newAgent(opts.remoteBlack, opts.seed)
	if err != nil {
		return err
	}
	whiteSeed := opts.seed
	if whiteSeed != 0 {
		whiteSeed++
	}
	white, err := newAgent(opts.remoteWhite, whiteSeed)
	if err != nil {
		return err
	}

	e := engine.LocalEngine(black, white)
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(e.Board)
	fmt.Printf("winner: %s (black %d, white %d) in %s\n",
		winner, gameMetric.BlackDiscs, gameMetric.WhiteDiscs, gameMetric.Duration.Round(time.Millisecond))
	return nil
}

// serve runs handler on addr until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info().Str("addr", addr).Msg("listening")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}
	return runErr
}
