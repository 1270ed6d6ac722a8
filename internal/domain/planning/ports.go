package planning

import (
	"context"
	"time"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
)

// Policy assigns an additive priority bias to a candidate transition.
// +Inf prunes the transition permanently; negative values favor it.
// The bias shapes exploration and does not guarantee A*-style
// optimality.
type Policy interface {
	Bias(current, candidate *inventory.State, action int) float64
}

// SearchObserver receives search engine events. Implementations must be
// cheap; the hooks sit on the hot path.
type SearchObserver interface {
	StateExpanded()
	SuccessorPushed()
	TransitionPruned()
	StaleEntrySkipped()
	SearchFinished(found bool, elapsed time.Duration)
}

// NopObserver discards all events
type NopObserver struct{}

func (NopObserver) StateExpanded()                                   {}
func (NopObserver) SuccessorPushed()                                 {}
func (NopObserver) TransitionPruned()                                {}
func (NopObserver) StaleEntrySkipped()                               {}
func (NopObserver) SearchFinished(found bool, elapsed time.Duration) {}

var _ SearchObserver = NopObserver{}

// RunRecorder persists the outcome of one search invocation
type RunRecorder interface {
	RecordRun(ctx context.Context, run *PlanRun) error
}

// PlanRun is the record of one bounded search attempt
type PlanRun struct {
	RunID          string
	SpecFile       string
	Goal           string
	Found          bool
	TotalCost      float64
	Actions        []string
	Elapsed        time.Duration
	StatesExpanded int
	CreatedAt      time.Time
}
