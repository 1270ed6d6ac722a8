package persistence

import (
	"time"

	"gorm.io/gorm"
)

// PlanRunModel represents the plan_runs table: one row per bounded
// search invocation, successful or not
type PlanRunModel struct {
	RunID          string    `gorm:"column:run_id;primaryKey"`
	SpecFile       string    `gorm:"column:spec_file;not null"`
	Goal           string    `gorm:"column:goal;not null"`
	Found          bool      `gorm:"column:found;not null"`
	TotalCost      float64   `gorm:"column:total_cost"`
	Actions        string    `gorm:"column:actions;type:text"` // JSON array as text
	ElapsedMillis  int64     `gorm:"column:elapsed_millis;not null"`
	StatesExpanded int       `gorm:"column:states_expanded;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (PlanRunModel) TableName() string {
	return "plan_runs"
}

// Migrate creates or updates the run-history schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PlanRunModel{})
}
