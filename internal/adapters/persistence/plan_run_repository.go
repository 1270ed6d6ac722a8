package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/craftplan-go/internal/domain/planning"
)

// GormPlanRunRepository implements planning.RunRecorder plus the read
// side used by the history commands
type GormPlanRunRepository struct {
	db *gorm.DB
}

// NewGormPlanRunRepository creates a new GORM plan run repository
func NewGormPlanRunRepository(db *gorm.DB) *GormPlanRunRepository {
	return &GormPlanRunRepository{db: db}
}

// RecordRun persists one search outcome
func (r *GormPlanRunRepository) RecordRun(ctx context.Context, run *planning.PlanRun) error {
	model, err := runToModel(run)
	if err != nil {
		return fmt.Errorf("failed to convert run to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to record run: %w", result.Error)
	}

	return nil
}

// FindByID retrieves a run by its ID
func (r *GormPlanRunRepository) FindByID(ctx context.Context, runID string) (*planning.PlanRun, error) {
	var model PlanRunModel
	result := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to find run: %w", result.Error)
	}

	return modelToRun(&model)
}

// ListRecent retrieves the most recent runs, newest first
func (r *GormPlanRunRepository) ListRecent(ctx context.Context, limit int) ([]*planning.PlanRun, error) {
	var models []PlanRunModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list runs: %w", result.Error)
	}

	runs := make([]*planning.PlanRun, 0, len(models))
	for i := range models {
		run, err := modelToRun(&models[i])
		if err != nil {
			continue // Skip unreadable rows
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func runToModel(run *planning.PlanRun) (*PlanRunModel, error) {
	actions, err := json.Marshal(run.Actions)
	if err != nil {
		return nil, err
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &PlanRunModel{
		RunID:          run.RunID,
		SpecFile:       run.SpecFile,
		Goal:           run.Goal,
		Found:          run.Found,
		TotalCost:      run.TotalCost,
		Actions:        string(actions),
		ElapsedMillis:  run.Elapsed.Milliseconds(),
		StatesExpanded: run.StatesExpanded,
		CreatedAt:      createdAt,
	}, nil
}

func modelToRun(model *PlanRunModel) (*planning.PlanRun, error) {
	var actions []string
	if model.Actions != "" {
		if err := json.Unmarshal([]byte(model.Actions), &actions); err != nil {
			return nil, fmt.Errorf("failed to parse actions: %w", err)
		}
	}

	return &planning.PlanRun{
		RunID:          model.RunID,
		SpecFile:       model.SpecFile,
		Goal:           model.Goal,
		Found:          model.Found,
		TotalCost:      model.TotalCost,
		Actions:        actions,
		Elapsed:        time.Duration(model.ElapsedMillis) * time.Millisecond,
		StatesExpanded: model.StatesExpanded,
		CreatedAt:      model.CreatedAt,
	}, nil
}
