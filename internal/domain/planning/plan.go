package planning

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
)

// PlanStep is one edge of the winning path: the action applied and the
// state it resulted in
type PlanStep struct {
	Action string
	State  *inventory.State
	Cost   float64
}

// Plan is an ordered action sequence transforming the start inventory
// into one satisfying the goal, with its total cost
type Plan struct {
	planID    string
	steps     []PlanStep
	totalCost float64
}

// NewPlan creates a plan from ordered steps
func NewPlan(steps []PlanStep) *Plan {
	total := 0.0
	for _, s := range steps {
		total += s.Cost
	}
	return &Plan{
		planID:    uuid.NewString(),
		steps:     steps,
		totalCost: total,
	}
}

// ID returns the unique plan identifier
func (p *Plan) ID() string {
	return p.planID
}

// Steps returns a copy of the ordered steps
func (p *Plan) Steps() []PlanStep {
	steps := make([]PlanStep, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Len returns the number of actions in the plan
func (p *Plan) Len() int {
	return len(p.steps)
}

// TotalCost returns the summed edge costs
func (p *Plan) TotalCost() float64 {
	return p.totalCost
}

// Actions returns just the ordered action names
func (p *Plan) Actions() []string {
	actions := make([]string, len(p.steps))
	for i, s := range p.steps {
		actions[i] = s.Action
	}
	return actions
}

func (p *Plan) String() string {
	return fmt.Sprintf("Plan(id=%s, steps=%d, cost=%.1f: %s)",
		p.planID, len(p.steps), p.totalCost, strings.Join(p.Actions(), " -> "))
}
