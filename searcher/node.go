package searcher

import (
	"fmt"
	"resistance/game"

	"gonum.org/v1/gonum/stat/combin"
)

// setup is shared by every node of a tree.
type setup struct {
	players int
	roster  []int
	rules   *game.Rules
}

// Node is one hypothesised round: the team sent, whether its mission succeeded and
// whether the agent should vote for it. Only the search statistics change after
// construction.
type Node struct {
	team           game.Team
	outcome        bool
	vote           bool
	round          int
	missionsFailed int
	setup          *setup

	parent   *Node // Never owns, only walked upwards
	children []*Node

	visits int
	wins   int // Simulations won by the resistance
}

func (n *Node) newChild(team game.Team, outcome, vote bool) *Node {
	missionsFailed := n.missionsFailed
	if !outcome {
		missionsFailed++
	}
	return &Node{
		team:           team,
		outcome:        outcome,
		vote:           vote,
		round:          n.round + 1,
		missionsFailed: missionsFailed,
		setup:          n.setup,
		parent:         n,
	}
}

func (n *Node) Team() game.Team     { return n.team }
func (n *Node) Outcome() bool       { return n.outcome }
func (n *Node) Vote() bool          { return n.vote }
func (n *Node) Round() int          { return n.round }
func (n *Node) MissionsFailed() int { return n.missionsFailed }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) Children() []*Node   { return n.children }
func (n *Node) Visits() int         { return n.visits }
func (n *Node) Wins() int           { return n.wins }

// IsTerminal reports whether either side has already won on this path.
func (n *Node) IsTerminal() bool {
	successes := n.round + 1 - n.missionsFailed
	return n.missionsFailed >= game.MissionsToWin || successes >= game.MissionsToWin
}

// Rollout returns true when the resistance wins at this terminal node.
func (n *Node) Rollout() bool {
	if !n.IsTerminal() {
		panic(fmt.Sprintf("rollout on non-terminal node: round %d with %d missions failed", n.round, n.missionsFailed))
	}
	return n.missionsFailed < game.MissionsToWin
}

// Expand adds every possible next round as children: each team of the next
// round's size, failed or succeeded, voted for or against. Expanding twice is a no-op.
// Team size is looked up for round+1, the round the children describe.
func (n *Node) Expand() error {
	if len(n.children) > 0 {
		return nil
	}
	if n.IsTerminal() {
		return fmt.Errorf("expand round %d: %w", n.round, ErrTerminalNode)
	}

	size, err := n.setup.rules.MissionSize(n.setup.players, n.round+1)
	if err != nil {
		return fmt.Errorf("expand round %d: %w", n.round, err)
	}
	roster := n.setup.roster
	if size > len(roster) {
		return fmt.Errorf("expand round %d: team of %d from %d players: %w", n.round, size, len(roster), game.ErrInvalidRules)
	}

	combinations := combin.Combinations(len(roster), size)
	children := make([]*Node, 0, 4*len(combinations))
	for _, combination := range combinations {
		members := make([]int, size)
		for i, index := range combination {
			members[i] = roster[index]
		}
		// Siblings share the team, it is never mutated
		team := game.NewTeam(members...)
		children = append(children,
			n.newChild(team, false, true),
			n.newChild(team, false, false),
			n.newChild(team, true, true),
			n.newChild(team, true, false),
		)
	}
	n.children = children
	return nil
}

// Backpropagate records a simulation result on this node and all its ancestors.
func (n *Node) Backpropagate(result bool) {
	for node := n; node != nil; node = node.parent {
		node.visits++
		if result {
			node.wins++
		}
	}
}

func (n *Node) matches(obs Observation) bool {
	return n.outcome == obs.Succeeded &&
		n.vote == obs.Vote &&
		n.round == obs.Round &&
		n.missionsFailed == obs.MissionsFailed &&
		n.team.Equal(game.NewTeam(obs.Team...))
}

func (n *Node) String() string {
	return fmt.Sprintf("round=%d team=%s outcome=%t vote=%t failed=%d wins=%d/%d",
		n.round, n.team, n.outcome, n.vote, n.missionsFailed, n.wins, n.visits)
}
