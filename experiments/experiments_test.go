package experiments

import (
	"os"
	"path/filepath"
	"resistance/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestConfig() Config {
	return Config{
		Name:       "test",
		Games:      4,
		Iterations: 50,
		Seed:       1,
		Lineups: [][]string{
			{"mct", "bounder", "bounder", "random", "random"},
			{"random", "random", "random", "random", "random", "random"},
		},
		Rules: game.NewStandardRules(),
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, newTestConfig().Validate())

	cases := map[string]func(c *Config){
		"no games":      func(c *Config) { c.Games = 0 },
		"no iterations": func(c *Config) { c.Iterations = -1 },
		"no rules":      func(c *Config) { c.Rules = nil },
		"no lineups":    func(c *Config) { c.Lineups = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := newTestConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("a table that is too small", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Lineups = [][]string{{"random", "random", "random"}}
		require.ErrorIs(t, cfg.Validate(), game.ErrUnsupportedPlayers)
	})
}

func TestRun(t *testing.T) {
	t.Run("tallying every game", func(t *testing.T) {
		tally, err := Run(newTestConfig())

		require.NoError(t, err)
		require.Equal(t, 8, tally.Games)
		require.Equal(t, tally.Games, tally.ResistanceWins+tally.SpyWins)
		require.Equal(t, 4, tally.Seats["mct"])
		require.Equal(t, 8, tally.Seats["bounder"])
		require.Equal(t, 8+24, tally.Seats["random"])
	})

	t.Run("repeating a run with the same seed", func(t *testing.T) {
		first, err := Run(newTestConfig())
		require.NoError(t, err)
		second, err := Run(newTestConfig())
		require.NoError(t, err)

		require.Equal(t, first, second)
	})

	t.Run("rejecting unknown agents", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Lineups = [][]string{{"random", "random", "greedy", "random", "random"}}

		_, err := Run(cfg)

		require.Error(t, err)
	})

	t.Run("writing records", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.OutputDir = t.TempDir()

		_, err := Run(cfg)
		require.NoError(t, err)

		runs, err := os.ReadDir(filepath.Join(cfg.OutputDir, cfg.Name))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		dir := filepath.Join(cfg.OutputDir, cfg.Name, runs[0].Name())
		for _, name := range []string{"setup.yaml", "game_records.csv", "decision_records.csv", "tally.yaml"} {
			require.FileExists(t, filepath.Join(dir, name))
		}
	})
}

func TestRunIterations(t *testing.T) {
	cfg := newTestConfig()
	cfg.Games = 2
	cfg.Lineups = cfg.Lineups[:1]

	tallies, err := RunIterations(cfg, []int{10, 100})

	require.NoError(t, err)
	require.Len(t, tallies, 2)
	for budget, tally := range tallies {
		require.Equal(t, 2, tally.Games, "Budget %d should play every game", budget)
	}
}
