package metrics

import (
	"sync/atomic"
	"time"

	"mcts/game"
)

type SearchMetric struct {
	Duration       time.Duration
	Iterations     int
	Bias           float64
	Rollouts       int // Iterations that expanded a node and played out a game
	TerminalVisits int // Iterations that ended on a finished position
	Nodes          int
}

type MoveMetric struct {
	Step     int
	Player   game.Player
	Move     string
	Shortcut bool // Only one legal move, agent not consulted
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	Draw           bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Result is "White", "Black" or "Draw".
func (g GameMetric) Result() string {
	if g.Draw {
		return "Draw"
	}
	return g.Winner.String()
}

type Collector interface {
	Start(bias float64)
	AddIteration()
	AddRollout()
	AddTerminal()
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	startTime  time.Time
	bias       float64
	iterations atomic.Int32
	rollouts   atomic.Int32
	terminals  atomic.Int32
	nodes      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(bias float64) {
	m.startTime = time.Now()
	m.bias = bias
	m.iterations.Store(0)
	m.rollouts.Store(0)
	m.terminals.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:       time.Since(m.startTime),
		Iterations:     int(m.iterations.Load()),
		Bias:           m.bias,
		Rollouts:       int(m.rollouts.Load()),
		TerminalVisits: int(m.terminals.Load()),
		Nodes:          int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(bias float64)     {}
func (m *dummyCollector) AddIteration()          {}
func (m *dummyCollector) AddRollout()            {}
func (m *dummyCollector) AddTerminal()           {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
