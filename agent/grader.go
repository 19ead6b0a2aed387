package agent

import (
	"resistance/game"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Grader keeps a suspicion score per player. Failed missions raise the score of the
// proposer, the members and whoever voted for the team; successful ones lower it.
// As resistance it sends the least suspect players and votes against teams that
// carry enough likely spies to fail. As a spy it sends just enough spies and fills
// the team with the most suspect resistance members.
type Grader struct {
	seat
	rules      *game.Rules
	rng        *rand.Rand
	round      int
	proposals  int
	spyCount   int
	suspicion  []float64
	supporters []int
}

func NewGrader(name string, rules *game.Rules, rng *rand.Rand) *Grader {
	return &Grader{seat: seat{name: name}, rules: rules, rng: rng}
}

func (a *Grader) NewGame(players, me int, spies []int) {
	a.seat.NewGame(players, me, spies)
	a.round = 0
	a.proposals = 0
	a.spyCount, _ = a.rules.SpyCount(players) // The engine only seats supported tables
	a.suspicion = make([]float64, players)
	a.supporters = nil
}

func (a *Grader) ProposeMission(size, failsRequired int) game.Team {
	if a.isSpy() {
		spies := slices.Clone([]int(a.spies))
		slices.SortStableFunc(spies, func(x, y int) int { return a.compare(y, x) })
		required := spies[:min(failsRequired, len(spies))]
		for _, player := range a.ranked() {
			if !a.spies.Contains(player) {
				required = append(required, player)
			}
		}
		return randomTeam(a.rng, a.players, size, required...)
	}

	if a.round == 0 || a.clean() {
		return randomTeam(a.rng, a.players, size, a.me)
	}
	ranked := a.ranked()
	required := []int{a.me}
	for i := len(ranked) - 1; i >= 0; i-- {
		required = append(required, ranked[i])
	}
	return randomTeam(a.rng, a.players, size, required...)
}

func (a *Grader) Vote(mission game.Team, proposer int) bool {
	a.proposals++
	if a.round == 0 || a.proposals >= game.MaxProposals {
		return true
	}
	fails, err := a.rules.FailsRequiredFor(a.players, a.round)
	if err != nil {
		fails = 1
	}
	if a.isSpy() {
		return a.spiesOn(mission) >= fails
	}

	likely := a.likely(a.spyCount)
	count := 0
	// A suspect proposer may have sent another spy in its place
	if likely.Contains(proposer) {
		count++
	}
	for _, player := range mission {
		if likely.Contains(player) {
			count++
		}
	}
	return count < fails
}

func (a *Grader) VoteOutcome(mission game.Team, proposer int, votes []bool) {
	a.supporters = a.supporters[:0]
	for player, vote := range votes {
		if vote {
			a.supporters = append(a.supporters, player)
		}
	}
}

func (a *Grader) Betray(mission game.Team, proposer int) bool {
	return a.isSpy()
}

func (a *Grader) MissionOutcome(mission game.Team, proposer, betrayals int, success bool) {
	likely := a.likely(a.spyCount + 1)
	forced := a.proposals >= game.MaxProposals

	if !success {
		if !a.isSpy() && mission.Contains(a.me) {
			for _, player := range mission {
				a.raise(player, 100)
			}
		}
		if likely.Contains(proposer) && a.suspicion[proposer] != 0 {
			a.raise(proposer, 10)
		} else {
			a.raise(proposer, 5)
		}
		for _, player := range mission {
			if likely.Contains(player) {
				a.raise(player, 15)
			} else {
				a.raise(player, 10)
			}
		}

		total := a.suspicion[proposer]
		for _, player := range mission {
			total += a.suspicion[player]
		}
		if !forced {
			for _, player := range a.supporters {
				if likely.Contains(player) {
					a.raise(player, total/5)
				} else {
					a.raise(player, total/3)
				}
			}
		}
		return
	}

	if a.round == 0 {
		return
	}
	a.raise(proposer, -10)
	for _, player := range mission {
		a.raise(player, -10)
	}
	if !forced {
		for _, player := range a.supporters {
			a.raise(player, -5)
		}
	}
}

func (a *Grader) RoundOutcome(roundsComplete, missionsFailed int) {
	a.round = roundsComplete
	a.proposals = 0
}

func (a *Grader) GameOutcome(spiesWin bool, spies []int) {}

// Suspicion returns the score of a player.
func (a *Grader) Suspicion(player int) float64 {
	return a.suspicion[player]
}

func (a *Grader) raise(player int, amount float64) {
	if player != a.me {
		a.suspicion[player] += amount
	}
}

// compare orders the more suspect player first.
func (a *Grader) compare(x, y int) int {
	switch {
	case a.suspicion[x] > a.suspicion[y]:
		return -1
	case a.suspicion[x] < a.suspicion[y]:
		return 1
	}
	return 0
}

// ranked returns every other player, most suspect first. Ties go to the lower seat.
func (a *Grader) ranked() []int {
	others := make([]int, 0, a.players)
	for player := 0; player < a.players; player++ {
		if player != a.me {
			others = append(others, player)
		}
	}
	slices.SortStableFunc(others, a.compare)
	return others
}

func (a *Grader) likely(n int) game.Team {
	ranked := a.ranked()
	return game.NewTeam(ranked[:min(n, len(ranked))]...)
}

func (a *Grader) clean() bool {
	for _, score := range a.suspicion {
		if score != 0 {
			return false
		}
	}
	return true
}
