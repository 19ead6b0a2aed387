package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"resistance/game"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type GameRecord struct {
	ID     int
	Lineup []string // Agent kind per seat
	GameMetric
}

type DecisionRecord struct {
	Game  int // GameRecord.ID
	Agent string
	DecisionMetric
}

// Setup is everything needed to rerun an experiment.
type Setup struct {
	Name       string      `yaml:"name"`
	Games      int         `yaml:"games"`
	Iterations int         `yaml:"iterations"`
	Seed       uint64      `yaml:"seed"`
	Lineups    [][]string  `yaml:"lineups"`
	Rules      *game.Rules `yaml:"rules"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a directory named by the current timestamp under root/name.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	return w.writeYAML("setup.yaml", setup)
}

func (w *Writer) WriteTally(tally Tally) error {
	return w.writeYAML("tally.yaml", tally)
}

func (w *Writer) writeYAML(name string, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	err = os.WriteFile(filepath.Join(w.baseDir, name), data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "lineup", "players", "spies", "spies_win", "rounds", "missions_failed", "start_time", "end_time", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strings.Join(record.Lineup, " "),
			strconv.Itoa(record.Players),
			game.NewTeam(record.Spies...).String(),
			strconv.FormatBool(record.SpiesWin),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.MissionsFailed),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		}
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	header := []string{"game", "agent", "round", "player", "iterations", "duration", "terminal_rollouts", "resistance_wins", "nodes_expanded", "nodes_created", "is_tree_reused"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			record.Agent,
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Iterations),
			record.Duration.String(),
			strconv.Itoa(record.TerminalRollouts),
			strconv.Itoa(record.ResistanceWins),
			strconv.Itoa(record.NodesExpanded),
			strconv.Itoa(record.NodesCreated),
			strconv.FormatBool(record.IsTreeReused),
		}
	}
	return w.writeCSV("decision_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows) // Flushes
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
