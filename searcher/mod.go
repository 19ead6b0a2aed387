package searcher

import (
	"errors"
	"resistance/game"
)

var (
	ErrTerminalNode       = errors.New("node is terminal")
	ErrNoMatchingChild    = errors.New("no child matches the observed round")
	ErrInvalidObservation = errors.New("invalid observation")
)

// Observation is what actually happened in a completed round, as seen by one agent.
type Observation struct {
	Team           game.Team
	Succeeded      bool
	Vote           bool // The agent's own vote on the mission that went out
	Round          int  // 0-based
	MissionsFailed int  // Including this round
}
