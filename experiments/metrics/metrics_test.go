package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"resistance/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCollector(t *testing.T) {
	t.Run("counting a search", func(t *testing.T) {
		c := NewCollector()
		c.Start(3)
		c.SetTreeReused(true)
		c.AddExpansion(40)
		c.AddExpansion(20)
		c.AddRollout(true)
		c.AddRollout(false)
		c.AddRollout(true)

		metric := c.Complete()

		require.Equal(t, 3, metric.Iterations)
		require.Equal(t, 3, metric.TerminalRollouts)
		require.Equal(t, 2, metric.ResistanceWins)
		require.Equal(t, 2, metric.NodesExpanded)
		require.Equal(t, 60, metric.NodesCreated)
		require.True(t, metric.IsTreeReused)
	})

	t.Run("resetting on start", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddRollout(true)
		c.SetTreeReused(true)

		c.Start(5)
		metric := c.Complete()

		require.Equal(t, 5, metric.Iterations)
		require.Zero(t, metric.TerminalRollouts)
		require.False(t, metric.IsTreeReused)
	})

	t.Run("ignoring everything in the dummy", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(5)
		c.AddRollout(true)

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestTally(t *testing.T) {
	tally := NewTally()
	lineup := []string{"mct", "random", "random", "bounder", "bounder"}

	tally.Add(lineup, GameMetric{Spies: []int{1, 3}, SpiesWin: true})
	tally.Add(lineup, GameMetric{Spies: []int{3, 4}, SpiesWin: false})

	require.Equal(t, 2, tally.Games)
	require.Equal(t, 1, tally.SpyWins)
	require.Equal(t, 1, tally.ResistanceWins)
	require.Equal(t, 2, tally.Seats["mct"])
	require.Equal(t, 4, tally.Seats["random"])
	require.Equal(t, 1, tally.Wins["mct"], "Won once as resistance")
	require.Equal(t, 3, tally.Wins["random"], "Seat 1 won as spy, seats 1 and 2 won as resistance")
	require.Equal(t, 1, tally.Wins["bounder"], "Only seat 3 won, as a spy")
	require.Equal(t, map[string]int{"random": 1, "bounder": 1}, tally.WinsAsSpy)
	require.Equal(t, map[string]int{"mct": 1, "random": 2}, tally.WinsAsResistance)
	require.InDelta(t, 0.75, tally.WinRate("random"), 1e-9)
	require.Zero(t, tally.WinRate("greedy"))
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	writer, err := NewWriter(root, "test")
	require.NoError(t, err)
	require.DirExists(t, writer.Dir())
	require.Equal(t, filepath.Join(root, "test"), filepath.Dir(writer.Dir()))

	t.Run("writing the setup", func(t *testing.T) {
		setup := Setup{
			Name:       "test",
			Games:      2,
			Iterations: 100,
			Seed:       42,
			Lineups:    [][]string{{"mct", "random", "random", "random", "random"}},
			Rules:      game.NewStandardRules(),
		}

		require.NoError(t, writer.WriteSetup(setup))

		data, err := os.ReadFile(filepath.Join(writer.Dir(), "setup.yaml"))
		require.NoError(t, err)
		var got Setup
		require.NoError(t, yaml.Unmarshal(data, &got))
		require.Equal(t, setup, got)
	})

	t.Run("writing game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		records := []GameRecord{{
			ID:     1,
			Lineup: []string{"mct", "random", "random", "random", "random"},
			GameMetric: GameMetric{
				Players:        5,
				Spies:          []int{3, 1},
				SpiesWin:       true,
				Rounds:         4,
				MissionsFailed: 3,
				StartTime:      start,
				EndTime:        start.Add(time.Second),
				Duration:       time.Second,
			},
		}}

		require.NoError(t, writer.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(writer.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"1", "mct random random random random", "5", "{1,3}", "true", "4", "3",
			"2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s"}, rows[1])
	})

	t.Run("writing decision records", func(t *testing.T) {
		records := []DecisionRecord{{
			Game:  1,
			Agent: "mct-0",
			DecisionMetric: DecisionMetric{
				Round:  2,
				Player: 0,
				SearchMetric: SearchMetric{
					Iterations:       100,
					Duration:         time.Millisecond,
					TerminalRollouts: 100,
					ResistanceWins:   61,
					NodesExpanded:    12,
					NodesCreated:     200,
					IsTreeReused:     true,
				},
			},
		}}

		require.NoError(t, writer.WriteDecisionRecords(records))

		rows := readCSV(t, filepath.Join(writer.Dir(), "decision_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "mct-0", "2", "0", "100", "1ms", "100", "61", "12", "200", "true"}, rows[1])
	})

	t.Run("writing the tally", func(t *testing.T) {
		tally := NewTally()
		tally.Add([]string{"a", "b", "b", "b", "b"}, GameMetric{Spies: []int{0, 1}, SpiesWin: true})

		require.NoError(t, writer.WriteTally(tally))

		data, err := os.ReadFile(filepath.Join(writer.Dir(), "tally.yaml"))
		require.NoError(t, err)
		var got Tally
		require.NoError(t, yaml.Unmarshal(data, &got))
		require.Equal(t, tally, got)
	})
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
