package config

import (
	"os"
	"path/filepath"
	"time"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Planner defaults
	if cfg.Planner.Budget == 0 {
		cfg.Planner.Budget = 5 * time.Second
	}
	if cfg.Planner.Heuristic.TerminalBonus == 0 {
		cfg.Planner.Heuristic.TerminalBonus = 1000
	}
	if cfg.Planner.Heuristic.UpgradeBonus == 0 {
		cfg.Planner.Heuristic.UpgradeBonus = 50
	}
	if cfg.Planner.Heuristic.Ladders == nil {
		cfg.Planner.Heuristic.Ladders = DefaultLadders()
	}
	if cfg.Planner.Heuristic.Caps == nil {
		cfg.Planner.Heuristic.Caps = DefaultCaps()
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = defaultHistoryPath()
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "craftplan"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "craftplan"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 5
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9391
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// DefaultLadders returns the tool ladders for the classic crafting
// item set. Ladder entries naming items absent from a loaded crafting
// file are ignored at policy construction.
func DefaultLadders() []LadderConfig {
	return []LadderConfig{
		{Family: "wood", Resource: "wood", Tools: []string{"wooden_axe", "stone_axe", "iron_axe"}},
		{Family: "stone", Resource: "cobble", Tools: []string{"wooden_pickaxe", "stone_pickaxe", "iron_pickaxe"}},
		{Family: "ore", Resource: "ore", Tools: []string{"stone_pickaxe", "iron_pickaxe"}},
		{Family: "coal", Resource: "coal", Tools: []string{"stone_pickaxe", "iron_pickaxe"}},
	}
}

// DefaultCaps returns the stockpile caps for the classic crafting item
// set. Each item carries two ascending caps so heavy overproduction is
// penalized harder than mild overproduction.
func DefaultCaps() []CapConfig {
	caps := []CapConfig{
		{Item: "wood", Limit: 4, Penalty: 100},
		{Item: "stick", Limit: 4, Penalty: 100},
		{Item: "plank", Limit: 8, Penalty: 100},
		{Item: "cobble", Limit: 8, Penalty: 100},
		{Item: "coal", Limit: 8, Penalty: 100},
		{Item: "ore", Limit: 8, Penalty: 100},
		{Item: "ingot", Limit: 8, Penalty: 100},
	}
	tiered := make([]CapConfig, 0, 2*len(caps))
	for _, c := range caps {
		tiered = append(tiered, c)
		tiered = append(tiered, CapConfig{Item: c.Item, Limit: 2 * c.Limit, Penalty: 4 * c.Penalty})
	}
	return tiered
}

// defaultHistoryPath places the run history database under ~/.craftplan
func defaultHistoryPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "craftplan-history.db"
	}
	return filepath.Join(homeDir, ".craftplan", "history.db")
}
