package experiments

import (
	"math"

	"mcts/experiments/metrics"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the z-value of a two sided confidence interval, with ci given
// as a percentage.
func ZVal(ci float64) float64 {
	area := (1 + ci/100) / 2
	return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(area)
}

// Margin is the half width of the ci% confidence interval of a score rate p
// measured over n games.
func Margin(p float64, n int, ci float64) float64 {
	if n == 0 {
		return 0
	}
	return ZVal(ci) * math.Sqrt(p*(1-p)/float64(n))
}

// summarize scores the games of one match up for its first agent.
func summarize(agent1, agent2 int, records []metrics.GameRecord) metrics.Summary {
	s := metrics.Summary{Agent1: agent1, Agent2: agent2, Games: len(records)}
	for _, r := range records {
		switch {
		case r.Draw:
			s.Draws++
		case r.Winner == r.Color:
			s.Wins++
		default:
			s.Losses++
		}
	}

	if s.Games > 0 {
		s.Score = (float64(s.Wins) + float64(s.Draws)/2) / float64(s.Games)
		s.Margin = Margin(s.Score, s.Games, 95)
	}
	return s
}
