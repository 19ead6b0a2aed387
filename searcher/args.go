package searcher

// Hyperparameters for MCTS

const C = 2.0 // Exploration constant of the final decision score

const Iterations = 10000 // Simulations per decision
