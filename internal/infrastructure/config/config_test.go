package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftplan-go/internal/infrastructure/config"
)

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	assert.Equal(t, 5*time.Second, cfg.Planner.Budget)
	assert.Equal(t, 1000.0, cfg.Planner.Heuristic.TerminalBonus)
	assert.Equal(t, 50.0, cfg.Planner.Heuristic.UpgradeBonus)
	assert.NotEmpty(t, cfg.Planner.Heuristic.Ladders)
	assert.NotEmpty(t, cfg.Planner.Heuristic.Caps)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.NotEmpty(t, cfg.Database.Path)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 9391, cfg.Metrics.Port)
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.Planner.Budget = 30 * time.Second
	cfg.Database.Type = "postgres"
	config.SetDefaults(cfg)

	assert.Equal(t, 30*time.Second, cfg.Planner.Budget)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Empty(t, cfg.Database.Path)
}

func TestDefaultCaps_Escalate(t *testing.T) {
	caps := config.DefaultCaps()

	byItem := make(map[string][]config.CapConfig)
	for _, c := range caps {
		byItem[c.Item] = append(byItem[c.Item], c)
	}

	// Every item carries a second cap at twice the limit with a
	// stiffer penalty
	for item, tiers := range byItem {
		require.Len(t, tiers, 2, "item %s", item)
		assert.Equal(t, 2*tiers[0].Limit, tiers[1].Limit, "item %s", item)
		assert.Greater(t, tiers[1].Penalty, tiers[0].Penalty, "item %s", item)
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	require.NoError(t, config.ValidateConfig(cfg))

	cfg.Logging.Level = "noisy"
	assert.Error(t, config.ValidateConfig(cfg))
}

func TestUserConfig_BudgetDuration(t *testing.T) {
	assert.Zero(t, (&config.UserConfig{}).BudgetDuration())
	assert.Zero(t, (&config.UserConfig{DefaultBudget: "soon"}).BudgetDuration())
	assert.Equal(t, 30*time.Second, (&config.UserConfig{DefaultBudget: "30s"}).BudgetDuration())
}
