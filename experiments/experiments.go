package experiments

import (
	"errors"
	"fmt"
	"resistance/agent"
	"resistance/engine"
	"resistance/experiments/metrics"
	"resistance/game"
	"resistance/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrInvalidConfig = errors.New("invalid experiment config")

// Config describes a set of tables to play. Each lineup lists one agent kind per seat.
type Config struct {
	Name       string
	Games      int // Per lineup
	Iterations int // Per MCTS decision
	Seed       uint64
	Lineups    [][]string
	Rules      *game.Rules
	OutputDir  string // Records are only written when set
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Rules == nil {
		return fmt.Errorf("%w: missing rules", ErrInvalidConfig)
	}
	if len(c.Lineups) == 0 {
		return fmt.Errorf("%w: no lineups", ErrInvalidConfig)
	}
	for i, lineup := range c.Lineups {
		if !c.Rules.Supports(len(lineup)) {
			return fmt.Errorf("lineup %d has %d seats: %w", i+1, len(lineup), game.ErrUnsupportedPlayers)
		}
	}
	return nil
}

// Run plays every lineup for the configured number of games and tallies the wins.
// Agents persist across the games of a lineup.
func Run(cfg Config) (metrics.Tally, error) {
	tally := metrics.NewTally()
	if err := cfg.Validate(); err != nil {
		return tally, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	count := 0
	gameRecords := []metrics.GameRecord{}
	decisionRecords := []metrics.DecisionRecord{}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	for li, lineup := range cfg.Lineups {
		agents, err := newAgents(lineup, cfg, rng)
		if err != nil {
			return tally, fmt.Errorf("lineup %d: %w", li+1, err)
		}
		var e engine.Engine
		e, err = engine.LocalEngine(agents, cfg.Rules, rng)
		if err != nil {
			return tally, fmt.Errorf("lineup %d: %w", li+1, err)
		}

		log.Info().Msgf("starting lineup %d of %d %v...", li+1, len(cfg.Lineups), lineup)

		reported := make([]int, len(agents))
		for i := 0; i < cfg.Games; i++ {
			result := e.Run()
			count++
			tally.Add(lineup, result.GameMetric)
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Lineup:     lineup,
				GameMetric: result.GameMetric,
			})

			for seat, a := range agents {
				reporter, ok := a.(agent.Reporter)
				if !ok {
					continue
				}
				decisions := reporter.Decisions()
				for _, decision := range decisions[reported[seat]:] {
					decisionRecords = append(decisionRecords, metrics.DecisionRecord{
						Game:           count,
						Agent:          a.Name(),
						DecisionMetric: decision,
					})
				}
				reported[seat] = len(decisions)
			}

			log.Debug().Msgf("completed lineup %d game %d of %d, spies win: %t", li+1, i+1, cfg.Games, result.SpiesWin)
		}
		log.Info().Msgf("completed lineup %d of %d", li+1, len(cfg.Lineups))
	}

	log.Info().
		Int("games", tally.Games).
		Int("resistance_wins", tally.ResistanceWins).
		Int("spy_wins", tally.SpyWins).
		Msgf("completed %s experiment", cfg.Name)

	if cfg.OutputDir == "" {
		return tally, nil
	}
	if err := write(cfg, tally, gameRecords, decisionRecords); err != nil {
		return tally, err
	}
	return tally, nil
}

// RunIterations plays the same lineups once per search budget.
func RunIterations(cfg Config, budgets []int) (map[int]metrics.Tally, error) {
	tallies := map[int]metrics.Tally{}
	name := cfg.Name
	for _, budget := range budgets {
		cfg.Iterations = budget
		cfg.Name = fmt.Sprintf("%s_%d", name, budget)
		tally, err := Run(cfg)
		if err != nil {
			return tallies, fmt.Errorf("budget %d: %w", budget, err)
		}
		tallies[budget] = tally
	}
	return tallies, nil
}

func newAgents(lineup []string, cfg Config, rng *rand.Rand) ([]game.Agent, error) {
	agents := make([]game.Agent, len(lineup))
	for seat, kind := range lineup {
		name := fmt.Sprintf("%s-%d", kind, seat)
		// Each searcher gets its own stream so adding a seat does not shift the others
		a, err := agent.New(kind, name, cfg.Rules, rng,
			searcher.WithIterations(cfg.Iterations),
			searcher.WithSeed(cfg.Seed+uint64(seat)+1),
		)
		if err != nil {
			return nil, err
		}
		agents[seat] = a
	}
	return agents, nil
}

func write(cfg Config, tally metrics.Tally, games []metrics.GameRecord, decisions []metrics.DecisionRecord) error {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteSetup(metrics.Setup{
		Name:       cfg.Name,
		Games:      cfg.Games,
		Iterations: cfg.Iterations,
		Seed:       cfg.Seed,
		Lineups:    cfg.Lineups,
		Rules:      cfg.Rules,
	})
	if err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}

	err = writer.WriteGameRecords(games)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}

	err = writer.WriteDecisionRecords(decisions)
	if err != nil {
		return fmt.Errorf("failed to write decision records: %w", err)
	}

	err = writer.WriteTally(tally)
	if err != nil {
		return fmt.Errorf("failed to write tally: %w", err)
	}

	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}
