package agent

import (
	"resistance/game"
	"resistance/meta"

	"golang.org/x/exp/rand"
)

// Random proposes random teams and votes at random. As a spy it betrays now and then.
type Random struct {
	seat
	rng *rand.Rand
}

func NewRandom(name string, rng *rand.Rand) *Random {
	return &Random{seat: seat{name: name}, rng: rng}
}

func (a *Random) ProposeMission(size, failsRequired int) game.Team {
	return randomTeam(a.rng, a.players, size)
}

func (a *Random) Vote(mission game.Team, proposer int) bool {
	return a.rng.Float64() < 0.5
}

func (a *Random) VoteOutcome(mission game.Team, proposer int, votes []bool) {}

func (a *Random) Betray(mission game.Team, proposer int) bool {
	return a.isSpy() && a.rng.Float64() < meta.BETRAY_PROBABILITY
}

func (a *Random) MissionOutcome(mission game.Team, proposer, betrayals int, success bool) {}
func (a *Random) RoundOutcome(roundsComplete, missionsFailed int)                         {}
func (a *Random) GameOutcome(spiesWin bool, spies []int)                                  {}
