package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTeam(t *testing.T) {
	t.Run("canonicalizing member order", func(t *testing.T) {
		members := []int{3, 0, 2}
		team := NewTeam(members...)

		require.Equal(t, Team{0, 2, 3}, team)
		require.Equal(t, []int{3, 0, 2}, members, "Input should not be reordered")
		require.True(t, team.Equal(NewTeam(2, 3, 0)), "Same set should be equal in any order")
		require.False(t, team.Equal(NewTeam(0, 2)))
	})

	t.Run("testing subsets", func(t *testing.T) {
		failed := NewTeam(1, 2, 4)

		require.True(t, NewTeam(4, 1).IsSubsetOf(failed))
		require.True(t, failed.IsSubsetOf(failed), "A team is a subset of itself")
		require.False(t, NewTeam(1, 3).IsSubsetOf(failed))
		require.True(t, Team{}.IsSubsetOf(failed), "The empty team is a subset of any team")
	})

	t.Run("validating against the table", func(t *testing.T) {
		require.NoError(t, NewTeam(0, 4).Validate(2, 5))
		require.Error(t, NewTeam(0, 1, 2).Validate(2, 5), "Wrong size")
		require.Error(t, NewTeam(0, 5).Validate(2, 5), "Out of range")
		require.Error(t, NewTeam(-1, 2).Validate(2, 5), "Negative player")
		require.Error(t, NewTeam(3, 3).Validate(2, 5), "Duplicate player")
	})

	t.Run("formatting", func(t *testing.T) {
		require.Equal(t, "{0,2,3}", NewTeam(2, 3, 0).String())
	})
}

func TestRoster(t *testing.T) {
	require.Equal(t, []int{0, 1, 2, 3, 4}, Roster(5))
}
