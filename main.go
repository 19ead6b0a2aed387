package main

import (
	"flag"
	"fmt"
	"os"
	"resistance/config"
	"resistance/experiments"
	"resistance/experiments/metrics"
	"resistance/game"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	experiment := flag.String("experiment", "tally", "Experiment to run: tally or iterations")
	games := flag.Int("games", cfg.Games, "Number of games per lineup")
	players := flag.Int("players", cfg.Players, "Number of players at the table")
	iterations := flag.Int("iterations", cfg.Iterations, "Number of simulations per MCTS decision")
	budgets := flag.String("budgets", "100,1000,10000", "Comma separated search budgets of the iterations experiment")
	seed := flag.Uint64("seed", cfg.Seed, "Random seed, 0 picks one from the clock")
	rulesPath := flag.String("rules", cfg.RulesPath, "YAML ruleset, standard rules when empty")
	outputDir := flag.String("out", cfg.OutputDir, "Directory for experiment records, nothing is written when empty")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	logFormat := flag.String("log-format", cfg.LogFormat, "Log format: console or json")
	lineup := flag.String("lineup", strings.Join(cfg.Lineup, ","), "Comma separated agent kinds (mct, bounder, grader, random), padded with random agents")
	flag.Parse()

	cfg.Games = *games
	cfg.Players = *players
	cfg.Iterations = *iterations
	cfg.Seed = *seed
	cfg.RulesPath = *rulesPath
	cfg.OutputDir = *outputDir
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat
	cfg.Lineup = config.ParseLineup(*lineup)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if err := setupLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if err := run(*experiment, cfg, *budgets); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}

func setupLogger(level, format string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(parsed)
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

func run(experiment string, cfg config.Config, budgets string) error {
	rules, err := game.LoadRules(cfg.RulesPath)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	ec := experiments.Config{
		Name:       experiment,
		Games:      cfg.Games,
		Iterations: cfg.Iterations,
		Seed:       cfg.Seed,
		Lineups:    [][]string{cfg.Table()},
		Rules:      rules,
		OutputDir:  cfg.OutputDir,
	}
	log.Info().Uint64("seed", ec.Seed).Strs("lineup", ec.Lineups[0]).Msg("configured")

	switch experiment {
	case "tally":
		tally, err := experiments.Run(ec)
		if err != nil {
			return err
		}
		report(ec.Lineups[0], tally)
	case "iterations":
		parsed, err := parseBudgets(budgets)
		if err != nil {
			return err
		}
		tallies, err := experiments.RunIterations(ec, parsed)
		if err != nil {
			return err
		}
		for _, budget := range parsed {
			log.Info().Int("iterations", budget).Msg("budget")
			report(ec.Lineups[0], tallies[budget])
		}
	default:
		return fmt.Errorf("unknown experiment %q", experiment)
	}
	return nil
}

func report(lineup []string, tally metrics.Tally) {
	log.Info().
		Int("games", tally.Games).
		Int("resistance_wins", tally.ResistanceWins).
		Int("spy_wins", tally.SpyWins).
		Msg("tally")
	seen := map[string]bool{}
	for _, kind := range lineup {
		if seen[kind] {
			continue
		}
		seen[kind] = true
		log.Info().
			Str("agent", kind).
			Int("seats", tally.Seats[kind]).
			Int("wins", tally.Wins[kind]).
			Int("wins_as_spy", tally.WinsAsSpy[kind]).
			Int("wins_as_resistance", tally.WinsAsResistance[kind]).
			Float64("win_rate", tally.WinRate(kind)).
			Msg("agent tally")
	}
}

func parseBudgets(value string) ([]int, error) {
	budgets := []int{}
	for _, field := range strings.Split(value, ",") {
		budget, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("failed to parse budget %q: %w", field, err)
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}
