// meta/meta.go
package meta

// GAMES defines the number of games played per lineup.
const GAMES = 100

// PLAYERS defines the default table size.
const PLAYERS = 5

// ITERATIONS defines the number of simulations per MCTS decision.
const ITERATIONS = 10000

// BETRAY_PROBABILITY defines how often a naive spy betrays a mission it is on.
const BETRAY_PROBABILITY = 0.3

// LINEUP defines the default table: one MCTS agent against rule-based seats.
const LINEUP = "mct,bounder,bounder,random,random"

// OUTPUT_DIR defines where experiment records are written.
const OUTPUT_DIR = "experiments"
