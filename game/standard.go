package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NewStandardRules returns the tables of the published game for 5 to 10 players.
func NewStandardRules() *Rules {
	return &Rules{
		MissionSizes: map[int][]int{
			5:  {2, 3, 2, 3, 3},
			6:  {3, 3, 3, 3, 3},
			7:  {2, 3, 3, 4, 5},
			8:  {3, 4, 4, 5, 5},
			9:  {3, 4, 4, 5, 5},
			10: {3, 4, 4, 5, 5},
		},
		SpyCounts: map[int]int{5: 2, 6: 2, 7: 3, 8: 3, 9: 3, 10: 4},
		FailsRequired: map[int][]int{
			5:  {1, 1, 1, 1, 1},
			6:  {1, 1, 1, 1, 1},
			7:  {1, 1, 1, 2, 1},
			8:  {1, 1, 1, 2, 1},
			9:  {1, 1, 1, 2, 1},
			10: {1, 1, 1, 2, 1},
		},
	}
}

// LoadRules reads a YAML ruleset from path. An empty path yields the standard rules.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return NewStandardRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (*Rules, error) {
	rules := &Rules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}
