package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardRules(t *testing.T) {
	rules := NewStandardRules()

	t.Run("validating standard tables", func(t *testing.T) {
		require.NoError(t, rules.Validate(), "Standard rules should be valid")
	})

	t.Run("looking up mission sizes", func(t *testing.T) {
		size, err := rules.MissionSize(5, 0)
		require.NoError(t, err)
		require.Equal(t, 2, size, "First mission of 5 players should send 2")

		size, err = rules.MissionSize(10, 4)
		require.NoError(t, err)
		require.Equal(t, 5, size, "Last mission of 10 players should send 5")
	})

	t.Run("looking up fails required", func(t *testing.T) {
		fails, err := rules.FailsRequiredFor(7, 3)
		require.NoError(t, err)
		require.Equal(t, 2, fails, "Fourth mission of 7+ players should need 2 fails")

		fails, err = rules.FailsRequiredFor(6, 3)
		require.NoError(t, err)
		require.Equal(t, 1, fails, "Fourth mission of 6 players should need 1 fail")
	})

	t.Run("looking up spy counts", func(t *testing.T) {
		spies, err := rules.SpyCount(10)
		require.NoError(t, err)
		require.Equal(t, 4, spies)
	})

	t.Run("rejecting unsupported player counts", func(t *testing.T) {
		_, err := rules.MissionSize(4, 0)
		require.ErrorIs(t, err, ErrUnsupportedPlayers)
		_, err = rules.SpyCount(11)
		require.ErrorIs(t, err, ErrUnsupportedPlayers)
		_, err = rules.FailsRequiredFor(3, 0)
		require.ErrorIs(t, err, ErrUnsupportedPlayers)
		require.False(t, rules.Supports(4))
		require.True(t, rules.Supports(8))
	})

	t.Run("rejecting rounds outside the board", func(t *testing.T) {
		_, err := rules.MissionSize(5, 5)
		require.ErrorIs(t, err, ErrRoundOutOfRange)
		_, err = rules.FailsRequiredFor(5, -1)
		require.ErrorIs(t, err, ErrRoundOutOfRange)
	})
}

func TestLoadRules(t *testing.T) {
	t.Run("defaulting to standard rules without a path", func(t *testing.T) {
		rules, err := LoadRules("")
		require.NoError(t, err)
		require.Equal(t, NewStandardRules(), rules)
	})

	t.Run("reading a YAML ruleset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		data := []byte(`
mission_sizes:
  5: [2, 3, 2, 3, 3]
spy_counts:
  5: 2
fails_required:
  5: [1, 1, 1, 1, 1]
`)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		rules, err := LoadRules(path)
		require.NoError(t, err)
		require.True(t, rules.Supports(5))
		require.False(t, rules.Supports(6), "Only the listed player count should be supported")
	})

	t.Run("rejecting inconsistent tables", func(t *testing.T) {
		_, err := ParseRules([]byte(`
mission_sizes:
  5: [2, 3, 2]
spy_counts:
  5: 2
fails_required:
  5: [1, 1, 1]
`))
		require.ErrorIs(t, err, ErrInvalidRules)

		_, err = ParseRules([]byte(`
mission_sizes:
  5: [2, 3, 2, 3, 3]
spy_counts:
  6: 2
fails_required:
  5: [1, 1, 1, 1, 1]
`))
		require.ErrorIs(t, err, ErrInvalidRules, "Missing spy count should be rejected")
	})

	t.Run("reporting a missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
