package game

// Agent is a seat at the table. The engine drives every agent through the same
// sequence of calls: NewGame once, then per round ProposeMission (leader only),
// Vote and VoteOutcome per proposal, Betray (spies on an approved mission),
// MissionOutcome and RoundOutcome, and finally GameOutcome.
type Agent interface {
	Name() string
	// NewGame tells the agent its seat; spies is empty unless the agent is a spy.
	NewGame(players, me int, spies []int)
	ProposeMission(size, failsRequired int) Team
	Vote(mission Team, proposer int) bool
	VoteOutcome(mission Team, proposer int, votes []bool)
	Betray(mission Team, proposer int) bool
	MissionOutcome(mission Team, proposer, betrayals int, success bool)
	// RoundOutcome reports the rounds completed so far (1-5) and the missions failed (0-3).
	RoundOutcome(roundsComplete, missionsFailed int)
	GameOutcome(spiesWin bool, spies []int)
}

// Roster lists the player indices of a table of the given size.
func Roster(players int) []int {
	roster := make([]int, players)
	for i := range roster {
		roster[i] = i
	}
	return roster
}
