package searcher

import (
	"fmt"
	"resistance/experiments/metrics"
	"resistance/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS runs a fixed number of simulations from a root and picks the best next round.
// Simulations descend through uniformly random children; the UCB score is only
// used for the final decision.
type MCTS struct {
	iterations  int
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithRand sets the random source of the descent.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations:  Iterations,
		exploration: C,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Search blocks until every simulation has run, then returns the best child of root.
func (m *MCTS) Search(root *Node, excluded []game.Team) (*Node, metrics.SearchMetric, error) {
	if root.IsTerminal() {
		return nil, metrics.SearchMetric{}, fmt.Errorf("search from round %d: %w", root.round, ErrTerminalNode)
	}

	m.metrics.Start(m.iterations)
	// A root with visits was searched before as a child of the previous root
	m.metrics.SetTreeReused(root.visits > 0)

	for i := 0; i < m.iterations; i++ {
		if err := m.simulate(root); err != nil {
			return nil, metrics.SearchMetric{}, err
		}
	}
	metric := m.metrics.Complete()

	best := root.bestChild(excluded, m.exploration)
	log.Debug().
		Int("round", root.round).
		Int("iterations", m.iterations).
		Int("root_visits", root.visits).
		Int("root_wins", root.wins).
		Stringer("team", best.team).
		Bool("vote", best.vote).
		Int("excluded", len(excluded)).
		Msg("search complete")

	return best, metric, nil
}

func (m *MCTS) simulate(root *Node) error {
	leaf, err := m.selectThenExpand(root)
	if err != nil {
		return err
	}
	result := leaf.Rollout()
	m.metrics.AddRollout(result)
	leaf.Backpropagate(result)
	return nil
}

// selectThenExpand walks down from root, expanding as it goes, until a terminal node.
func (m *MCTS) selectThenExpand(root *Node) (*Node, error) {
	node := root
	for !node.IsTerminal() {
		if len(node.children) == 0 {
			if err := node.Expand(); err != nil {
				return nil, err
			}
			m.metrics.AddExpansion(len(node.children))
		}
		node = node.children[m.rng.Intn(len(node.children))]
	}
	return node, nil
}
