package agent

import (
	"resistance/game"

	"golang.org/x/exp/rand"
)

// Bounder is a rule-based agent. As resistance it distrusts everyone who sat on
// a failed mission and marks players as spies once the betrayal count proves it.
// As a spy it makes sure a spy goes on every mission.
type Bounder struct {
	seat
	rules      *game.Rules
	rng        *rand.Rand
	round      int
	proposals  int
	distrusted map[int]bool
	known      map[int]bool
}

func NewBounder(name string, rules *game.Rules, rng *rand.Rand) *Bounder {
	return &Bounder{seat: seat{name: name}, rules: rules, rng: rng}
}

func (a *Bounder) NewGame(players, me int, spies []int) {
	a.seat.NewGame(players, me, spies)
	a.round = 0
	a.proposals = 0
	a.distrusted = map[int]bool{}
	a.known = map[int]bool{}
}

func (a *Bounder) ProposeMission(size, failsRequired int) game.Team {
	if a.isSpy() {
		// Enough spies to sink it, starting with me
		required := []int{a.me}
		for _, spy := range a.spies {
			if len(required) < failsRequired && spy != a.me {
				required = append(required, spy)
			}
		}
		return randomTeam(a.rng, a.players, size, required...)
	}

	required := []int{a.me}
	for _, player := range a.rng.Perm(a.players) {
		if player != a.me && !a.distrusted[player] && !a.known[player] {
			required = append(required, player)
		}
	}
	if len(required) < size {
		// Not enough trusted players, fall back to the ones not proven to be spies
		for _, player := range a.rng.Perm(a.players) {
			if !a.known[player] {
				required = append(required, player)
			}
		}
	}
	return randomTeam(a.rng, a.players, size, required...)
}

func (a *Bounder) Vote(mission game.Team, proposer int) bool {
	a.proposals++
	if a.isSpy() {
		return a.spiesOn(mission) > 0
	}
	if a.proposals >= game.MaxProposals || proposer == a.me {
		return true
	}
	for _, player := range mission {
		if a.known[player] || a.distrusted[player] {
			return false
		}
	}
	return true
}

func (a *Bounder) VoteOutcome(mission game.Team, proposer int, votes []bool) {}

func (a *Bounder) Betray(mission game.Team, proposer int) bool {
	// The first mission is too early to give ourselves away
	return a.isSpy() && a.round > 0
}

func (a *Bounder) MissionOutcome(mission game.Team, proposer, betrayals int, success bool) {
	if success || a.isSpy() {
		return
	}
	others := 0
	for _, player := range mission {
		if player != a.me {
			a.distrusted[player] = true
			others++
		}
	}
	if betrayals == others {
		for _, player := range mission {
			if player != a.me {
				a.known[player] = true
			}
		}
	}
}

func (a *Bounder) RoundOutcome(roundsComplete, missionsFailed int) {
	a.round = roundsComplete
	a.proposals = 0
}

func (a *Bounder) GameOutcome(spiesWin bool, spies []int) {}

// Suspects returns the players this agent distrusts, in seat order.
func (a *Bounder) Suspects() game.Team {
	suspects := []int{}
	for player := range a.distrusted {
		suspects = append(suspects, player)
	}
	return game.NewTeam(suspects...)
}
