package agent

import (
	"fmt"
	"resistance/experiments/metrics"
	"resistance/game"
	"resistance/meta"
	"resistance/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// MCT plays the resistance side with a Monte Carlo tree search over mission outcomes.
// The tree is started once the first mission is over and re-rooted after every
// later one, so statistics gathered for the round that actually happened carry over.
//
// As a spy it does not search: it votes for teams with a spy on them, puts itself
// on its own teams and betrays now and then.
type MCT struct {
	seat
	rules   *game.Rules
	rng     *rand.Rand
	mcts    *searcher.MCTS // Kept across games, one random stream per agent
	session *searcher.Session

	round       int
	proposals   int
	lastVote    bool
	mission     game.Team
	succeeded   bool
	failedTeams []game.Team
	decisions   []metrics.DecisionMetric
}

func NewMCT(name string, rules *game.Rules, rng *rand.Rand, options ...searcher.Option) *MCT {
	return &MCT{
		seat:  seat{name: name},
		rules: rules,
		rng:   rng,
		mcts:  searcher.NewMCTS(append([]searcher.Option{searcher.WithMetrics()}, options...)...),
	}
}

func (a *MCT) NewGame(players, me int, spies []int) {
	a.seat.NewGame(players, me, spies)
	a.round = 0
	a.proposals = 0
	a.lastVote = false
	a.mission = nil
	a.failedTeams = nil
	a.session = nil
	if !a.isSpy() {
		a.session = searcher.NewSession(players, a.rules, a.mcts)
	}
}

func (a *MCT) ProposeMission(size, failsRequired int) game.Team {
	if decision := a.decision(); decision != nil && len(decision.Team()) == size {
		// The team is shared with the sibling nodes
		return slices.Clone(decision.Team())
	}
	return randomTeam(a.rng, a.players, size, a.me)
}

func (a *MCT) Vote(mission game.Team, proposer int) bool {
	a.proposals++
	if a.isSpy() {
		return a.spiesOn(mission) > 0
	}
	if a.round == 0 || a.proposals >= game.MaxProposals || proposer == a.me {
		return true
	}
	if decision := a.decision(); decision != nil {
		return decision.Vote()
	}
	return true
}

func (a *MCT) VoteOutcome(mission game.Team, proposer int, votes []bool) {
	// Only the vote on the proposal that goes ahead is kept
	a.lastVote = votes[a.me]
}

func (a *MCT) Betray(mission game.Team, proposer int) bool {
	return a.isSpy() && a.rng.Float64() < meta.BETRAY_PROBABILITY
}

func (a *MCT) MissionOutcome(mission game.Team, proposer, betrayals int, success bool) {
	a.mission = game.NewTeam(mission...)
	a.succeeded = success
	if !success {
		a.failedTeams = append(a.failedTeams, a.mission)
	}
}

func (a *MCT) RoundOutcome(roundsComplete, missionsFailed int) {
	a.round = roundsComplete
	a.proposals = 0
	if a.session == nil {
		return
	}

	obs := searcher.Observation{
		Team:           a.mission,
		Succeeded:      a.succeeded,
		Vote:           a.lastVote,
		Round:          roundsComplete - 1,
		MissionsFailed: missionsFailed,
	}
	var err error
	if roundsComplete == 1 {
		err = a.session.Start(obs)
	} else {
		err = a.session.Advance(obs)
	}
	if err != nil {
		panic(fmt.Sprintf("%s failed to follow round %d: %v", a.name, roundsComplete, err))
	}
	if a.session.Root().IsTerminal() {
		return
	}

	decision, err := a.session.Decide(a.failedTeams)
	if err != nil {
		panic(fmt.Sprintf("%s failed to search round %d: %v", a.name, roundsComplete+1, err))
	}
	a.decisions = append(a.decisions, metrics.DecisionMetric{
		Round:        decision.Round(),
		Player:       a.me,
		SearchMetric: a.session.LastMetric(),
	})
	log.Debug().
		Str("agent", a.name).
		Int("round", decision.Round()).
		Stringer("team", decision.Team()).
		Bool("vote", decision.Vote()).
		Msg("decided")
}

func (a *MCT) GameOutcome(spiesWin bool, spies []int) {
	// Drop the tree, it is only valid for this match
	a.session = nil
}

// Decisions returns the metrics of every search this agent ran, across games.
func (a *MCT) Decisions() []metrics.DecisionMetric {
	return a.decisions
}

func (a *MCT) decision() *searcher.Node {
	if a.session == nil {
		return nil
	}
	return a.session.Decision()
}
