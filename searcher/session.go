package searcher

import (
	"fmt"
	"resistance/experiments/metrics"
	"resistance/game"

	"golang.org/x/exp/slices"
)

// MakeRoot builds the first root of a match from the observed outcome of round 1.
func MakeRoot(obs Observation, players int, roster []int, rules *game.Rules) (*Node, error) {
	if !rules.Supports(players) {
		return nil, fmt.Errorf("make root for %d players: %w", players, game.ErrUnsupportedPlayers)
	}
	if obs.Round < 0 || obs.MissionsFailed < 0 || obs.MissionsFailed > obs.Round+1 || obs.MissionsFailed > game.MissionsToWin {
		return nil, fmt.Errorf("round %d with %d missions failed: %w", obs.Round, obs.MissionsFailed, ErrInvalidObservation)
	}
	size, err := rules.MissionSize(players, obs.Round)
	if err != nil {
		return nil, fmt.Errorf("make root: %w", err)
	}
	team := game.NewTeam(obs.Team...)
	if err := team.Validate(size, players); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidObservation, err)
	}

	return &Node{
		team:           team,
		outcome:        obs.Succeeded,
		vote:           obs.Vote,
		round:          obs.Round,
		missionsFailed: obs.MissionsFailed,
		setup: &setup{
			players: players,
			roster:  slices.Clone(roster),
			rules:   rules,
		},
	}, nil
}

// RunSearch runs a full search from root and returns the recommended next round.
func RunSearch(root *Node, excluded []game.Team, options ...Option) (*Node, error) {
	best, _, err := NewMCTS(options...).Search(root, excluded)
	return best, err
}

// AdvanceRoot re-roots the tree at the child of previous that matches what actually
// happened. The new root is detached and its siblings are dropped with previous.
func AdvanceRoot(previous *Node, obs Observation) (*Node, error) {
	for _, child := range previous.children {
		if child.matches(obs) {
			child.parent = nil
			previous.children = nil
			return child, nil
		}
	}
	return nil, fmt.Errorf("round %d team %s succeeded=%t vote=%t failed=%d: %w",
		obs.Round, game.NewTeam(obs.Team...), obs.Succeeded, obs.Vote, obs.MissionsFailed, ErrNoMatchingChild)
}

// Session keeps one agent's tree across the rounds of a single match.
type Session struct {
	players  int
	roster   []int
	rules    *game.Rules
	mcts     *MCTS
	root     *Node
	decision *Node
	metric   metrics.SearchMetric
}

// NewSession follows one match with the given searcher. A searcher can be shared by
// the successive sessions of an agent so its random stream carries on between matches.
func NewSession(players int, rules *game.Rules, mcts *MCTS) *Session {
	return &Session{
		players: players,
		roster:  game.Roster(players),
		rules:   rules,
		mcts:    mcts,
	}
}

// Start roots the tree at the first completed round.
func (s *Session) Start(obs Observation) error {
	root, err := MakeRoot(obs, s.players, s.roster, s.rules)
	if err != nil {
		return err
	}
	s.root = root
	s.decision = nil
	return nil
}

// Advance moves the root to the observed round.
func (s *Session) Advance(obs Observation) error {
	if s.root == nil {
		return s.Start(obs)
	}
	root, err := AdvanceRoot(s.root, obs)
	if err != nil {
		return err
	}
	s.root = root
	s.decision = nil
	return nil
}

// Decide searches from the current root and remembers the recommendation.
func (s *Session) Decide(excluded []game.Team) (*Node, error) {
	if s.root == nil {
		return nil, fmt.Errorf("decide before the first round: %w", ErrInvalidObservation)
	}
	best, metric, err := s.mcts.Search(s.root, excluded)
	if err != nil {
		return nil, err
	}
	s.decision = best
	s.metric = metric
	return best, nil
}

func (s *Session) Root() *Node                      { return s.root }
func (s *Session) Decision() *Node                  { return s.decision }
func (s *Session) LastMetric() metrics.SearchMetric { return s.metric }
