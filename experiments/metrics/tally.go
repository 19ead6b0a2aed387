package metrics

import "golang.org/x/exp/slices"

// Tally counts wins over many games. Seats and wins are keyed by agent kind, so a
// kind sitting in several seats is counted once per seat.
type Tally struct {
	Games            int            `yaml:"games"`
	ResistanceWins   int            `yaml:"resistance_wins"`
	SpyWins          int            `yaml:"spy_wins"`
	Seats            map[string]int `yaml:"seats"`
	Wins             map[string]int `yaml:"wins"`
	WinsAsSpy        map[string]int `yaml:"wins_as_spy"`
	WinsAsResistance map[string]int `yaml:"wins_as_resistance"`
}

func NewTally() Tally {
	return Tally{
		Seats:            map[string]int{},
		Wins:             map[string]int{},
		WinsAsSpy:        map[string]int{},
		WinsAsResistance: map[string]int{},
	}
}

func (t *Tally) Add(lineup []string, metric GameMetric) {
	t.Games++
	if metric.SpiesWin {
		t.SpyWins++
	} else {
		t.ResistanceWins++
	}
	for seat, kind := range lineup {
		t.Seats[kind]++
		if !metric.Won(seat) {
			continue
		}
		t.Wins[kind]++
		if slices.Contains(metric.Spies, seat) {
			t.WinsAsSpy[kind]++
		} else {
			t.WinsAsResistance[kind]++
		}
	}
}

// WinRate returns the share of seats a kind won, or 0 if it never played.
func (t Tally) WinRate(kind string) float64 {
	if t.Seats[kind] == 0 {
		return 0
	}
	return float64(t.Wins[kind]) / float64(t.Seats[kind])
}

// Won reports whether the given seat was on the winning side.
func (g GameMetric) Won(player int) bool {
	return slices.Contains(g.Spies, player) == g.SpiesWin
}
