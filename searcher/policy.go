package searcher

import (
	"math"
	"resistance/game"
)

// ucb scores a child from its integer counts. Unvisited children score +Inf so that
// they are never discarded because of a zero denominator.
func ucb(wins, visits int, c, lnN float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}

	n := float64(visits)
	// UCB = w/n + c*sqrt(2*ln(N)/n)
	return float64(wins)/n + c*math.Sqrt(2*lnN/n)
}

// BestChild returns the highest scoring child whose team is not a subset of an
// excluded team. When every child is excluded, all children are candidates again.
// Ties go to the first child in expansion order. A childless node returns nil.
func (n *Node) BestChild(excluded []game.Team) *Node {
	return n.bestChild(excluded, C)
}

func (n *Node) bestChild(excluded []game.Team, c float64) *Node {
	candidates := make([]*Node, 0, len(n.children))
	for _, child := range n.children {
		if !isExcluded(child.team, excluded) {
			candidates = append(candidates, child)
		}
	}
	if len(candidates) == 0 {
		candidates = n.children
	}

	lnN := 0.0
	if n.visits > 0 {
		lnN = math.Log(float64(n.visits))
	}

	var best *Node
	maxScore := math.Inf(-1)
	for _, child := range candidates {
		score := ucb(child.wins, child.visits, c, lnN)
		if best == nil || score > maxScore {
			best = child
			maxScore = score
		}
	}
	return best
}

func isExcluded(team game.Team, excluded []game.Team) bool {
	for _, failed := range excluded {
		if team.IsSubsetOf(failed) {
			return true
		}
	}
	return false
}
