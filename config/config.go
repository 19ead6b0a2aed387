package config

import (
	"errors"
	"fmt"
	"os"
	"resistance/agent"
	"resistance/meta"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slices"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	EnvGames      = "RESISTANCE_GAMES"
	EnvPlayers    = "RESISTANCE_PLAYERS"
	EnvIterations = "RESISTANCE_ITERATIONS"
	EnvSeed       = "RESISTANCE_SEED"
	EnvLineup     = "RESISTANCE_LINEUP"
	EnvRules      = "RESISTANCE_RULES"
	EnvOutputDir  = "RESISTANCE_OUTPUT_DIR"
	EnvLogLevel   = "RESISTANCE_LOG_LEVEL"
	EnvLogFormat  = "RESISTANCE_LOG_FORMAT"
)

type Config struct {
	Games      int
	Players    int
	Iterations int
	Seed       uint64 // 0 picks one from the clock
	Lineup     []string
	RulesPath  string // Empty means the standard rules
	OutputDir  string
	LogLevel   string
	LogFormat  string // console or json
}

func Default() Config {
	return Config{
		Games:      meta.GAMES,
		Players:    meta.PLAYERS,
		Iterations: meta.ITERATIONS,
		Lineup:     ParseLineup(meta.LINEUP),
		OutputDir:  meta.OUTPUT_DIR,
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// Load reads the given .env files, if they exist, then the environment over the defaults.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	c := Default()
	var err error
	if c.Games, err = intEnv(EnvGames, c.Games); err != nil {
		return Config{}, err
	}
	if c.Players, err = intEnv(EnvPlayers, c.Players); err != nil {
		return Config{}, err
	}
	if c.Iterations, err = intEnv(EnvIterations, c.Iterations); err != nil {
		return Config{}, err
	}
	if value, ok := os.LookupEnv(EnvSeed); ok {
		c.Seed, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", EnvSeed, err)
		}
	}
	if value, ok := os.LookupEnv(EnvLineup); ok {
		c.Lineup = ParseLineup(value)
	}
	c.RulesPath = stringEnv(EnvRules, c.RulesPath)
	c.OutputDir = stringEnv(EnvOutputDir, c.OutputDir)
	c.LogLevel = stringEnv(EnvLogLevel, c.LogLevel)
	c.LogFormat = stringEnv(EnvLogFormat, c.LogFormat)

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if len(c.Lineup) > c.Players {
		return fmt.Errorf("%w: lineup has %d seats for %d players", ErrInvalidConfig, len(c.Lineup), c.Players)
	}
	for _, kind := range c.Lineup {
		if !slices.Contains(agent.Kinds, kind) {
			return fmt.Errorf("%w: unknown agent kind %q", ErrInvalidConfig, kind)
		}
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Table returns the lineup padded with random agents up to the number of players.
func (c Config) Table() []string {
	table := make([]string, 0, c.Players)
	table = append(table, c.Lineup...)
	for len(table) < c.Players {
		table = append(table, agent.KindRandom)
	}
	return table
}

// ParseLineup splits a comma separated list of agent kinds.
func ParseLineup(value string) []string {
	lineup := []string{}
	for _, kind := range strings.Split(value, ",") {
		if kind = strings.TrimSpace(kind); kind != "" {
			lineup = append(lineup, strings.ToLower(kind))
		}
	}
	return lineup
}

func intEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func stringEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
