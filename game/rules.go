package game

import (
	"errors"
	"fmt"
)

// Missions per game, fixed by the board.
const NumMissions = 5

// Missions either side needs to win the game.
const MissionsToWin = 3

// Proposals per round; the last one goes ahead whatever the vote.
const MaxProposals = 5

var (
	ErrUnsupportedPlayers = errors.New("unsupported number of players")
	ErrRoundOutOfRange    = errors.New("round out of range")
	ErrInvalidRules       = errors.New("invalid rules")
)

// Rules holds the per-player-count tables of a game. Rules are read only once
// constructed and are shared by pointer between the engine, agents and search trees.
type Rules struct {
	MissionSizes  map[int][]int `yaml:"mission_sizes"`
	SpyCounts     map[int]int   `yaml:"spy_counts"`
	FailsRequired map[int][]int `yaml:"fails_required"`
}

// MissionSize returns the team size of the given 0-based round.
func (r *Rules) MissionSize(players, round int) (int, error) {
	sizes, ok := r.MissionSizes[players]
	if !ok {
		return 0, fmt.Errorf("mission size for %d players: %w", players, ErrUnsupportedPlayers)
	}
	if round < 0 || round >= len(sizes) {
		return 0, fmt.Errorf("mission size for round %d: %w", round, ErrRoundOutOfRange)
	}
	return sizes[round], nil
}

// FailsRequiredFor returns the number of betrayals that fail the given 0-based round.
func (r *Rules) FailsRequiredFor(players, round int) (int, error) {
	fails, ok := r.FailsRequired[players]
	if !ok {
		return 0, fmt.Errorf("fails required for %d players: %w", players, ErrUnsupportedPlayers)
	}
	if round < 0 || round >= len(fails) {
		return 0, fmt.Errorf("fails required for round %d: %w", round, ErrRoundOutOfRange)
	}
	return fails[round], nil
}

func (r *Rules) SpyCount(players int) (int, error) {
	spies, ok := r.SpyCounts[players]
	if !ok {
		return 0, fmt.Errorf("spy count for %d players: %w", players, ErrUnsupportedPlayers)
	}
	return spies, nil
}

// Supports reports whether every table has an entry for the player count.
func (r *Rules) Supports(players int) bool {
	_, sizes := r.MissionSizes[players]
	_, spies := r.SpyCounts[players]
	_, fails := r.FailsRequired[players]
	return sizes && spies && fails
}

// Validate checks that the three tables agree with each other and with the board.
func (r *Rules) Validate() error {
	if len(r.MissionSizes) == 0 {
		return fmt.Errorf("no mission sizes: %w", ErrInvalidRules)
	}
	for players, sizes := range r.MissionSizes {
		if !r.Supports(players) {
			return fmt.Errorf("incomplete tables for %d players: %w", players, ErrInvalidRules)
		}
		fails := r.FailsRequired[players]
		if len(sizes) != NumMissions || len(fails) != NumMissions {
			return fmt.Errorf("%d players need %d missions: %w", players, NumMissions, ErrInvalidRules)
		}
		spies := r.SpyCounts[players]
		if spies <= 0 || spies >= players {
			return fmt.Errorf("%d spies for %d players: %w", spies, players, ErrInvalidRules)
		}
		for round, size := range sizes {
			if size <= 0 || size > players {
				return fmt.Errorf("mission %d of %d players has size %d: %w", round, players, size, ErrInvalidRules)
			}
			if fails[round] <= 0 || fails[round] > size {
				return fmt.Errorf("mission %d of %d players needs %d fails: %w", round, players, fails[round], ErrInvalidRules)
			}
		}
	}
	return nil
}
