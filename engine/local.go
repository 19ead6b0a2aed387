package engine

import (
	"fmt"
	"resistance/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Local plays a game between in-process agents. The seat of an agent is its
// index in the slice.
type Local struct {
	agents []game.Agent
	rules  *game.Rules
	rng    *rand.Rand
}

func LocalEngine(agents []game.Agent, rules *game.Rules, rng *rand.Rand) (*Local, error) {
	if !rules.Supports(len(agents)) {
		return nil, fmt.Errorf("%d agents: %w", len(agents), game.ErrUnsupportedPlayers)
	}
	if rng == nil {
		return nil, fmt.Errorf("missing random source: %w", ErrInvalidTable)
	}
	return &Local{agents: agents, rules: rules, rng: rng}, nil
}

// Run executes the entire game loop until a winner is found.
func (e *Local) Run() Result {
	players := len(e.agents)
	spyCount, _ := e.rules.SpyCount(players) // Supported, checked in LocalEngine
	spies := game.NewTeam(e.rng.Perm(players)[:spyCount]...)

	for i, agent := range e.agents {
		if spies.Contains(i) {
			agent.NewGame(players, i, slices.Clone(spies))
		} else {
			agent.NewGame(players, i, []int{})
		}
	}

	leader := e.rng.Intn(players)
	log.Info().Int("players", players).Stringer("spies", spies).Int("leader", leader).Msg("game started")

	result := Result{}
	result.Players = players
	result.Spies = slices.Clone(spies)
	result.StartTime = time.Now()

	failed, succeeded := 0, 0
	for round := 0; failed < game.MissionsToWin && succeeded < game.MissionsToWin; round++ {
		size, _ := e.rules.MissionSize(players, round)
		fails, _ := e.rules.FailsRequiredFor(players, round)
		history := Round{Number: round}

		for attempt := 1; ; attempt++ {
			proposal := e.propose(leader, size, fails)
			leader = (leader + 1) % players

			yes := 0
			proposal.Votes = make([]bool, players)
			for i, agent := range e.agents {
				proposal.Votes[i] = agent.Vote(slices.Clone(proposal.Team), proposal.Proposer)
				if proposal.Votes[i] {
					yes++
				}
			}
			// Strict majority, and the last proposal goes ahead regardless
			proposal.Approved = yes*2 > players || attempt == game.MaxProposals
			for _, agent := range e.agents {
				agent.VoteOutcome(slices.Clone(proposal.Team), proposal.Proposer, slices.Clone(proposal.Votes))
			}
			history.Proposals = append(history.Proposals, proposal)
			if proposal.Approved {
				history.Proposer = proposal.Proposer
				history.Mission = proposal.Team
				break
			}
		}

		for _, player := range history.Mission {
			if spies.Contains(player) && e.agents[player].Betray(slices.Clone(history.Mission), history.Proposer) {
				history.Betrayals++
			}
		}
		history.Succeeded = history.Betrayals < fails
		if history.Succeeded {
			succeeded++
		} else {
			failed++
		}
		result.History = append(result.History, history)

		for _, agent := range e.agents {
			agent.MissionOutcome(slices.Clone(history.Mission), history.Proposer, history.Betrayals, history.Succeeded)
		}
		for _, agent := range e.agents {
			agent.RoundOutcome(round+1, failed)
		}
		log.Debug().
			Int("round", round).
			Stringer("mission", history.Mission).
			Int("proposals", len(history.Proposals)).
			Int("betrayals", history.Betrayals).
			Bool("succeeded", history.Succeeded).
			Msg("round complete")
	}

	result.SpiesWin = failed >= game.MissionsToWin
	result.Rounds = len(result.History)
	result.MissionsFailed = failed
	for _, agent := range e.agents {
		agent.GameOutcome(result.SpiesWin, slices.Clone(spies))
	}
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	log.Info().Bool("spies_win", result.SpiesWin).Int("rounds", result.Rounds).Msg("game over")
	return result
}

// propose asks the leader for a team, replacing an illegal one with a random legal team.
func (e *Local) propose(leader, size, fails int) Proposal {
	players := len(e.agents)
	team := game.NewTeam(e.agents[leader].ProposeMission(size, fails)...)
	if err := team.Validate(size, players); err != nil {
		log.Warn().Err(err).Str("agent", e.agents[leader].Name()).Msg("invalid proposal, picking a random team")
		team = game.NewTeam(e.rng.Perm(players)[:size]...)
	}
	return Proposal{Proposer: leader, Team: team}
}
