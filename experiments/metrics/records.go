package metrics

import "mcts/game"

// Agent kinds accepted in an experiment file.
const (
	KindMCTS     = "mcts"
	KindTraining = "training"
	KindRandom   = "random"
)

type AgentConfig struct {
	ID          int     `yaml:"id"`
	Kind        string  `yaml:"kind"`
	Iterations  int     `yaml:"iterations"`
	Bias        float64 `yaml:"bias"`
	Temperature float64 `yaml:"temperature"` // Training agents only
}

type GameRecord struct {
	ID     int
	Agent1 int         // AgentConfig.ID
	Agent2 int         // AgentConfig.ID
	Color  game.Player // Played by Agent1
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Summary holds the results of a match up from the point of view of Agent1.
type Summary struct {
	Agent1 int
	Agent2 int
	Games  int
	Wins   int
	Losses int
	Draws  int
	Score  float64 // (wins + draws/2) / games
	Margin float64 // Half width of the 95% confidence interval of Score
}
