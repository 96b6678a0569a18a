// meta/meta.go
package meta

// ITERATIONS defines the default number of MCTS iterations per move.
const ITERATIONS = 1000

// BIAS defines the default UCB1 exploration bias.
const BIAS = 1.0

// WORKERS defines the default number of games an experiment plays at once.
const WORKERS = 4

// GAMES defines the default number of games per experiment match up.
const GAMES = 10

// OUTPUT defines the default directory experiment results are written to.
const OUTPUT = "experiments"
