package experiments

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"mcts/experiments/metrics"
	"mcts/meta"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var ErrInvalidExperiment = errors.New("invalid experiment")

// Games lists the boards an experiment can be played on.
var Games = []string{"tictactoe", "connect4", "checkers"}

type Experiment struct {
	Name     string                `yaml:"name"`
	Game     string                `yaml:"game"`
	Games    int                   `yaml:"games"` // Per match up
	Workers  int                   `yaml:"workers"`
	Seed     uint64                `yaml:"seed"`
	Output   string                `yaml:"output"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
	MatchUps [][2]int              `yaml:"matchups"`
}

func LoadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment: %w", err)
	}
	return ParseExperiment(data)
}

// ParseExperiment decodes a YAML experiment, fills in defaults and validates it.
func ParseExperiment(data []byte) (*Experiment, error) {
	exp := &Experiment{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(exp); err != nil {
		return nil, fmt.Errorf("failed to decode experiment: %w", err)
	}

	exp.setDefaults()
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return exp, nil
}

func (e *Experiment) setDefaults() {
	if e.Name == "" {
		e.Name = e.Game
	}
	if e.Workers == 0 {
		e.Workers = meta.WORKERS
	}
	if e.Output == "" {
		e.Output = meta.OUTPUT
	}
	for i := range e.Agents {
		if e.Agents[i].Kind == "" {
			e.Agents[i].Kind = metrics.KindMCTS
		}
		if e.Agents[i].Bias == 0 {
			e.Agents[i].Bias = meta.BIAS
		}
	}
}

func (e *Experiment) Validate() error {
	if !lo.Contains(Games, e.Game) {
		return fmt.Errorf("%w: unknown game %q", ErrInvalidExperiment, e.Game)
	}
	if e.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidExperiment, e.Games)
	}
	if e.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidExperiment, e.Workers)
	}

	ids := map[int]bool{}
	for _, config := range e.Agents {
		if ids[config.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidExperiment, config.ID)
		}
		ids[config.ID] = true

		switch config.Kind {
		case metrics.KindMCTS, metrics.KindTraining:
			if config.Iterations <= 0 {
				return fmt.Errorf("%w: agent %d needs positive iterations", ErrInvalidExperiment, config.ID)
			}
			if config.Kind == metrics.KindTraining && config.Temperature <= 0 {
				return fmt.Errorf("%w: agent %d needs a positive temperature", ErrInvalidExperiment, config.ID)
			}
		case metrics.KindRandom:
		default:
			return fmt.Errorf("%w: agent %d has unknown kind %q", ErrInvalidExperiment, config.ID, config.Kind)
		}
	}

	if len(e.MatchUps) == 0 {
		return fmt.Errorf("%w: no match ups", ErrInvalidExperiment)
	}
	for _, matchUp := range e.MatchUps {
		for _, id := range matchUp {
			if !ids[id] {
				return fmt.Errorf("%w: match up %v references unknown agent %d", ErrInvalidExperiment, matchUp, id)
			}
		}
	}
	return nil
}

func (e *Experiment) agent(id int) metrics.AgentConfig {
	config, _ := lo.Find(e.Agents, func(c metrics.AgentConfig) bool {
		return c.ID == id
	})
	return config
}
