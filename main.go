package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"time"

	"mcts/engine"
	"mcts/experiments"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/game/checkers"
	"mcts/game/connect4"
	"mcts/game/tictactoe"
	"mcts/meta"
	"mcts/searcher/agent"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

const (
	kindHuman  = "human"
	kindRemote = "remote"
)

type options struct {
	white       string
	black       string
	iterations  int
	bias        float64
	temperature float64
	seed        uint64
	quiet       bool
	remote      string
}

func main() {
	gameName := flag.String("game", "tictactoe", "Game to play: tictactoe, connect4 or checkers")
	white := flag.String("white", kindHuman, "White player: human, mcts, training, random or remote")
	black := flag.String("black", metrics.KindMCTS, "Black player: human, mcts, training, random or remote")
	iterations := flag.Int("iterations", meta.ITERATIONS, "Number of search iterations per move")
	bias := flag.Float64("bias", meta.BIAS, "UCB1 exploration bias")
	temperature := flag.Float64("temperature", 1.0, "Move sampling temperature of training players")
	seed := flag.Uint64("seed", 0, "Random seed, 0 picks one")
	quiet := flag.Bool("quiet", false, "Only report the result")
	experiment := flag.String("experiment", "", "Run the experiment described by this YAML file")
	serve := flag.String("serve", "", "Serve the black player over HTTP on this address instead of playing")
	remote := flag.String("remote", "", "URL of the agent server used by remote players")
	level := flag.String("log", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	if *experiment != "" {
		runExperiment(*experiment)
		return
	}

	o := options{
		white:       *white,
		black:       *black,
		iterations:  *iterations,
		bias:        *bias,
		temperature: *temperature,
		seed:        *seed,
		quiet:       *quiet,
		remote:      *remote,
	}
	if o.seed == 0 {
		o.seed = frand.Uint64n(math.MaxUint64)
	}
	log.Info().Uint64("seed", o.seed).Msgf("starting %s game", *gameName)

	switch *gameName {
	case "tictactoe":
		err = start(tictactoe.NewGame, *serve, o)
	case "connect4":
		err = start(connect4.NewGame, *serve, o)
	case "checkers":
		err = start(checkers.NewGame, *serve, o)
	default:
		err = fmt.Errorf("unknown game %q", *gameName)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func start[M game.Move, B game.Board[M, B]](newGame func() *game.State[M, B], addr string, o options) error {
	if addr == "" {
		return play[M](newGame().Board(), o)
	}

	a, err := newPlayer[M, B](o.black, o, o.seed, nil)
	if err != nil {
		return err
	}
	log.Info().Msgf("serving %s player on %s", o.black, addr)
	return newHTTPServer(addr, agent.NewServer(newGame, a)).ListenAndServe()
}

// newHTTPServer bounds how long clients may take to send requests. Writes get
// a long timeout since a response waits for a full search.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}

func runExperiment(path string) {
	exp, err := experiments.LoadExperiment(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load experiment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summaries, err := experiments.Run(ctx, exp)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, s := range summaries {
		fmt.Printf("agent %d vs agent %d: %d wins, %d losses, %d draws, score %.3f ± %.3f\n",
			s.Agent1, s.Agent2, s.Wins, s.Losses, s.Draws, s.Score, s.Margin)
	}
}

func play[M game.Move, B game.Board[M, B]](board B, o options) error {
	var rl *readline.Instance
	if o.white == kindHuman || o.black == kindHuman {
		var err error
		rl, err = readline.NewEx(&readline.Config{
			Prompt:    "move> ",
			EOFPrompt: "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer rl.Close()
	}

	white, err := newPlayer[M, B](o.white, o, o.seed, rl)
	if err != nil {
		return err
	}
	black, err := newPlayer[M, B](o.black, o, o.seed+1, rl)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if o.quiet {
		out = nil
	}
	e := engine.LocalEngine[M, B](board, white, black, engine.WithOutput(out))

	gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	if o.quiet {
		fmt.Println(gameMetric.Result())
	}
	log.Info().Int("moves", gameMetric.TotalMoves).Dur("duration", gameMetric.Duration).Msgf("result: %s", gameMetric.Result())
	return nil
}

func newPlayer[M game.Move, B game.Board[M, B]](kind string, o options, seed uint64, rl *readline.Instance) (agent.Agent[M, B], error) {
	switch kind {
	case kindHuman:
		if rl == nil {
			return nil, fmt.Errorf("human player needs a terminal")
		}
		return agent.NewHumanAgent[M, B](rl, rl.Stdout()), nil
	case kindRemote:
		if o.remote == "" {
			return nil, fmt.Errorf("remote player needs -remote")
		}
		return agent.NewRemoteAgent[M, B](o.remote, nil), nil
	}

	config := metrics.AgentConfig{
		Kind:        kind,
		Iterations:  o.iterations,
		Bias:        o.bias,
		Temperature: o.temperature,
	}
	return experiments.NewAgent[M, B](config, seed)
}
