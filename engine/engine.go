package engine

import (
	"errors"
	"resistance/experiments/metrics"
	"resistance/game"
)

var ErrInvalidTable = errors.New("invalid table")

type Engine interface {
	// Run plays a game until either side has won three missions
	Run() Result
}

// Proposal is one team put to the vote.
type Proposal struct {
	Proposer int
	Team     game.Team
	Votes    []bool
	Approved bool
}

// Round is the history of one mission, including the proposals that were rejected.
type Round struct {
	Number    int
	Proposals []Proposal
	Proposer  int
	Mission   game.Team
	Betrayals int
	Succeeded bool
}

type Result struct {
	metrics.GameMetric
	History []Round
}
