package config

import "time"

// PlannerConfig holds search engine configuration
type PlannerConfig struct {
	// Budget is the default wall-clock search budget
	Budget time.Duration `mapstructure:"budget" validate:"required"`

	// RecordRuns persists every search outcome to the run history
	// database when enabled
	RecordRuns bool `mapstructure:"record_runs"`

	// Heuristic tunes the pruning/shaping policy
	Heuristic HeuristicConfig `mapstructure:"heuristic"`
}

// HeuristicConfig declares the rule tables of the pruning policy.
// Entries naming items absent from a crafting file are ignored for
// that file, so one configuration can serve several specs.
type HeuristicConfig struct {
	// Disabled switches to the zero policy (plain uniform-cost search)
	Disabled bool `mapstructure:"disabled"`

	// TerminalBonus is the priority bonus for completing a goal item
	TerminalBonus float64 `mapstructure:"terminal_bonus" validate:"min=0"`

	// UpgradeBonus scales the bias toward acquiring missing tool tiers
	UpgradeBonus float64 `mapstructure:"upgrade_bonus" validate:"min=0"`

	// Ladders lists the tool tiers per resource family
	Ladders []LadderConfig `mapstructure:"ladders" validate:"dive"`

	// Caps lists soft stockpile caps for consumables
	Caps []CapConfig `mapstructure:"caps" validate:"dive"`
}

// LadderConfig is one resource family's ascending tool ladder
type LadderConfig struct {
	Family   string   `mapstructure:"family" validate:"required"`
	Resource string   `mapstructure:"resource" validate:"required"`
	Tools    []string `mapstructure:"tools" validate:"required,min=1,dive,required"`
}

// CapConfig is one soft cap on a consumable item
type CapConfig struct {
	Item    string  `mapstructure:"item" validate:"required"`
	Limit   int     `mapstructure:"limit" validate:"min=1"`
	Penalty float64 `mapstructure:"penalty" validate:"gt=0"`
}
