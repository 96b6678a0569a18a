package experiments

import (
	"context"
	"fmt"

	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/game/checkers"
	"mcts/game/connect4"
	"mcts/game/tictactoe"
	"mcts/searcher"
	"mcts/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Run plays every match up of exp, writes the records under exp.Output and
// returns one summary per match up.
func Run(ctx context.Context, exp *Experiment) ([]metrics.Summary, error) {
	switch exp.Game {
	case "tictactoe":
		return runExperiment[tictactoe.Move](ctx, exp, tictactoe.NewBoard)
	case "connect4":
		return runExperiment[connect4.Move](ctx, exp, connect4.NewBoard)
	case "checkers":
		return runExperiment[checkers.Move](ctx, exp, checkers.NewBoard)
	}
	return nil, fmt.Errorf("%w: unknown game %q", ErrInvalidExperiment, exp.Game)
}

func runExperiment[M game.Move, B game.Board[M, B]](ctx context.Context, exp *Experiment, newBoard func() B) ([]metrics.Summary, error) {
	log.Info().Msgf("starting %s experiment...", exp.Name)

	total := len(exp.MatchUps) * exp.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exp.Workers)

	for mi, matchUp := range exp.MatchUps {
		config1 := exp.agent(matchUp[0])
		config2 := exp.agent(matchUp[1])

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), config1, config2)

		for i := 0; i < exp.Games; i++ {
			index := mi*exp.Games + i
			// Colors alternate so that neither agent always moves first
			color := game.White
			if i%2 == 1 {
				color = game.Black
			}

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				seed := exp.Seed + 2*uint64(index)
				gameMetric, moveMetrics, err := runGame[M](newBoard(), config1, config2, color, seed)
				if err != nil {
					return fmt.Errorf("failed to play matchup %d game %d: %w", mi+1, i+1, err)
				}

				id := index + 1
				gameRecords[index] = metrics.GameRecord{
					ID:         id,
					Agent1:     config1.ID,
					Agent2:     config2.ID,
					Color:      color,
					GameMetric: gameMetric,
				}
				moveRecords[index] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
					return metrics.MoveRecord{Game: id, MoveMetric: mm}
				})

				log.Info().Msgf("completed matchup %d of %d game %d of %d with result: %s", mi+1, len(exp.MatchUps), i+1, exp.Games, gameMetric.Result())
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to run %s experiment: %w", exp.Name, err)
	}

	summaries := make([]metrics.Summary, 0, len(exp.MatchUps))
	for mi, matchUp := range exp.MatchUps {
		s := summarize(matchUp[0], matchUp[1], gameRecords[mi*exp.Games:(mi+1)*exp.Games])
		summaries = append(summaries, s)
		log.Info().
			Int("agent1", s.Agent1).
			Int("agent2", s.Agent2).
			Int("wins", s.Wins).
			Int("losses", s.Losses).
			Int("draws", s.Draws).
			Float64("score", s.Score).
			Float64("margin", s.Margin).
			Msg("matchup-summary")
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if err := store(exp, gameRecords, lo.Flatten(moveRecords), summaries); err != nil {
		return summaries, err
	}
	return summaries, nil
}

func store(exp *Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord, summaries []metrics.Summary) error {
	writer, err := metrics.NewWriter(exp.Output, exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(exp.Agents)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	err = writer.WriteSummaries(summaries)
	if err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Msgf("stored summaries in %s", writer.Dir())

	return nil
}

// runGame plays one game with fresh agents. The first agent takes color and is
// seeded with seed, the second seed+1.
func runGame[M game.Move, B game.Board[M, B]](board B, config1, config2 metrics.AgentConfig, color game.Player, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := NewAgent[M, B](config1, seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	agent2, err := NewAgent[M, B](config2, seed+1)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	white, black := agent1, agent2
	if color == game.Black {
		white, black = agent2, agent1
	}

	e := engine.LocalEngine[M, B](board, white, black)
	return e.Run()
}

// NewAgent builds the agent described by config.
func NewAgent[M game.Move, B game.Board[M, B]](config metrics.AgentConfig, seed uint64) (agent.Agent[M, B], error) {
	if config.Kind != metrics.KindRandom && config.Iterations <= 0 {
		return nil, fmt.Errorf("%w: agent %d needs positive iterations", ErrInvalidExperiment, config.ID)
	}
	if config.Kind == metrics.KindTraining && config.Temperature <= 0 {
		return nil, fmt.Errorf("%w: agent %d needs a positive temperature", ErrInvalidExperiment, config.ID)
	}

	switch config.Kind {
	case metrics.KindMCTS:
		return agent.NewEvaluationAgent(createMCTS[M, B](config, seed)), nil
	case metrics.KindTraining:
		return agent.NewTrainingAgent(createMCTS[M, B](config, seed), config.Temperature, samplerSeed(seed)), nil
	case metrics.KindRandom:
		return agent.NewRandomAgent[M, B](searcher.NewRand(seed)), nil
	}
	return nil, fmt.Errorf("%w: unknown agent kind %q", ErrInvalidExperiment, config.Kind)
}

// samplerSeed derives the seed of a training agent's move sampler so that its
// draws are independent of the search's random source.
func samplerSeed(seed uint64) uint64 {
	return seed ^ 0x9e3779b97f4a7c15
}

func createMCTS[M game.Move, B game.Board[M, B]](config metrics.AgentConfig, seed uint64) *searcher.MCTS[M, B] {
	options := []searcher.Option{
		searcher.WithIterations(config.Iterations),
		searcher.WithBias(config.Bias),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	return searcher.NewMCTS[M, B](options...)
}
