package metrics

import (
	"time"
)

type SearchMetric struct {
	Iterations       int
	Duration         time.Duration
	TerminalRollouts int
	ResistanceWins   int
	NodesExpanded    int
	NodesCreated     int
	IsTreeReused     bool
}

// DecisionMetric is one search made by one agent during a game.
type DecisionMetric struct {
	Round  int
	Player int
	SearchMetric
}

type GameMetric struct {
	Players        int
	Spies          []int
	SpiesWin       bool
	Rounds         int
	MissionsFailed int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Collector accumulates counters for a single search. Searches are single threaded,
// so the counters are plain integers.
type Collector interface {
	Start(iterations int)
	SetTreeReused(value bool)
	AddRollout(result bool)
	AddExpansion(children int)
	Complete() SearchMetric
}

type collector struct {
	iterations   int
	startTime    time.Time
	rollouts     int
	wins         int
	expanded     int
	created      int
	isTreeReused bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations int) {
	*m = collector{
		iterations: iterations,
		startTime:  time.Now(),
	}
}

func (m *collector) SetTreeReused(value bool) {
	m.isTreeReused = value
}

func (m *collector) AddRollout(result bool) {
	m.rollouts++
	if result {
		m.wins++
	}
}

func (m *collector) AddExpansion(children int) {
	m.expanded++
	m.created += children
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations:       m.iterations,
		Duration:         time.Since(m.startTime),
		TerminalRollouts: m.rollouts,
		ResistanceWins:   m.wins,
		NodesExpanded:    m.expanded,
		NodesCreated:     m.created,
		IsTreeReused:     m.isTreeReused,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int)      {}
func (m *dummyCollector) SetTreeReused(value bool)  {}
func (m *dummyCollector) AddRollout(result bool)    {}
func (m *dummyCollector) AddExpansion(children int) {}
func (m *dummyCollector) Complete() SearchMetric    { return SearchMetric{} }
