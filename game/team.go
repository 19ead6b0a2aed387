package game

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Team is a set of player indices kept sorted, so equal sets compare equal element-wise.
type Team []int

// NewTeam copies and sorts the given players.
func NewTeam(players ...int) Team {
	team := slices.Clone(players)
	slices.Sort(team)
	return Team(team)
}

func (t Team) Contains(player int) bool {
	_, found := slices.BinarySearch(t, player)
	return found
}

// IsSubsetOf reports whether every member of t is also in other.
func (t Team) IsSubsetOf(other Team) bool {
	for _, player := range t {
		if !other.Contains(player) {
			return false
		}
	}
	return true
}

func (t Team) Equal(other Team) bool {
	return slices.Equal(t, other)
}

// Validate checks the team against the table size and player range.
func (t Team) Validate(size, players int) error {
	if len(t) != size {
		return fmt.Errorf("team %s has %d members, want %d", t, len(t), size)
	}
	for i, player := range t {
		if player < 0 || player >= players {
			return fmt.Errorf("team %s has player %d outside [0,%d)", t, player, players)
		}
		if i > 0 && t[i-1] == player {
			return fmt.Errorf("team %s repeats player %d", t, player)
		}
	}
	return nil
}

func (t Team) String() string {
	members := make([]string, len(t))
	for i, player := range t {
		members[i] = strconv.Itoa(player)
	}
	return "{" + strings.Join(members, ",") + "}"
}
