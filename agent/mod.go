package agent

import (
	"fmt"
	"resistance/experiments/metrics"
	"resistance/game"
	"resistance/searcher"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

const (
	KindMCT     = "mct"
	KindBounder = "bounder"
	KindGrader  = "grader"
	KindRandom  = "random"
)

// Kinds lists every agent kind New can build.
var Kinds = []string{KindMCT, KindBounder, KindGrader, KindRandom}

// Reporter is implemented by agents that search, to expose their per-decision metrics.
type Reporter interface {
	Decisions() []metrics.DecisionMetric
}

// New builds an agent of the given kind.
func New(kind, name string, rules *game.Rules, rng *rand.Rand, options ...searcher.Option) (game.Agent, error) {
	switch kind {
	case KindMCT:
		return NewMCT(name, rules, rng, options...), nil
	case KindBounder:
		return NewBounder(name, rules, rng), nil
	case KindGrader:
		return NewGrader(name, rules, rng), nil
	case KindRandom:
		return NewRandom(name, rng), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}

// seat is what every agent knows about its place at the table.
type seat struct {
	name    string
	players int
	me      int
	spies   game.Team
}

func (s *seat) Name() string {
	return s.name
}

func (s *seat) NewGame(players, me int, spies []int) {
	s.players = players
	s.me = me
	s.spies = game.NewTeam(spies...)
}

func (s *seat) isSpy() bool {
	return s.spies.Contains(s.me)
}

func (s *seat) spiesOn(mission game.Team) int {
	count := 0
	for _, player := range mission {
		if s.spies.Contains(player) {
			count++
		}
	}
	return count
}

// randomTeam fills a team of size with the required players first, then random others.
func randomTeam(rng *rand.Rand, players, size int, required ...int) game.Team {
	team := make([]int, 0, size)
	for _, player := range required {
		if len(team) < size && !slices.Contains(team, player) {
			team = append(team, player)
		}
	}
	for _, player := range rng.Perm(players) {
		if len(team) == size {
			break
		}
		if !slices.Contains(team, player) {
			team = append(team, player)
		}
	}
	return game.NewTeam(team...)
}
