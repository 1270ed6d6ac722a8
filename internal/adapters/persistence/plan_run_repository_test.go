package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftplan-go/internal/adapters/persistence"
	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
	"github.com/andrescamacho/craftplan-go/test/helpers"
)

func sampleRun(found bool, createdAt time.Time) *planning.PlanRun {
	run := &planning.PlanRun{
		RunID:          uuid.New().String(),
		SpecFile:       "Crafting.json",
		Goal:           "plank>=1",
		Found:          found,
		Elapsed:        42 * time.Millisecond,
		StatesExpanded: 7,
		CreatedAt:      createdAt,
	}
	if found {
		run.TotalCost = 2
		run.Actions = []string{"chop", "craft plank"}
	}
	return run
}

func TestGormPlanRunRepository_RecordAndFind(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)
	ctx := context.Background()

	run := sampleRun(true, time.Now().UTC())
	require.NoError(t, repo.RecordRun(ctx, run))

	loaded, err := repo.FindByID(ctx, run.RunID)
	require.NoError(t, err)

	assert.Equal(t, run.RunID, loaded.RunID)
	assert.Equal(t, run.SpecFile, loaded.SpecFile)
	assert.Equal(t, run.Goal, loaded.Goal)
	assert.True(t, loaded.Found)
	assert.Equal(t, run.TotalCost, loaded.TotalCost)
	assert.Equal(t, run.Actions, loaded.Actions)
	assert.Equal(t, run.Elapsed, loaded.Elapsed)
	assert.Equal(t, run.StatesExpanded, loaded.StatesExpanded)
}

func TestGormPlanRunRepository_RecordsFailedRuns(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)
	ctx := context.Background()

	run := sampleRun(false, time.Now().UTC())
	require.NoError(t, repo.RecordRun(ctx, run))

	loaded, err := repo.FindByID(ctx, run.RunID)
	require.NoError(t, err)

	assert.False(t, loaded.Found)
	assert.Zero(t, loaded.TotalCost)
	assert.Empty(t, loaded.Actions)
}

func TestGormPlanRunRepository_FindByIDNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)

	_, err := repo.FindByID(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestGormPlanRunRepository_ListRecent(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRunRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		run := sampleRun(true, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.RecordRun(ctx, run))
		ids = append(ids, run.RunID)
	}

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first
	assert.Equal(t, ids[4], runs[0].RunID)
	assert.Equal(t, ids[3], runs[1].RunID)
	assert.Equal(t, ids[2], runs[2].RunID)
}
