package planning

import (
	"container/heap"
	"log"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/craftplan-go/internal/domain/inventory"
	"github.com/andrescamacho/craftplan-go/internal/domain/recipe"
	"github.com/andrescamacho/craftplan-go/internal/domain/shared"
)

// startAction marks the start sentinel in the predecessor table
const startAction = -1

// Result is the outcome of one bounded search invocation. Found=false
// covers both budget exhaustion and queue exhaustion; the engine cannot
// tell an unreachable goal from an unlucky budget, so both carry only
// the elapsed time.
type Result struct {
	Found          bool
	Plan           *Plan
	Elapsed        time.Duration
	StatesExpanded int
}

// Err returns nil on success and a NoPlanFoundError on failure
func (r *Result) Err() error {
	if r.Found {
		return nil
	}
	return shared.NewNoPlanFoundError(r.Elapsed)
}

// queueEntry is one pending expansion. cost is the cost-so-far recorded
// when the entry was pushed; an entry whose cost no longer matches the
// best known cost for its state is stale and skipped without expansion.
type queueEntry struct {
	priority float64
	cost     float64
	state    *inventory.State
}

// stateQueue is a min-heap on (priority, state key). The key order is
// the deterministic tie-break between equal priorities.
type stateQueue []queueEntry

func (q stateQueue) Len() int { return len(q) }

func (q stateQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].state.Compare(q[j].state) < 0
}

func (q stateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *stateQueue) Push(x any) { *q = append(*q, x.(queueEntry)) }

func (q *stateQueue) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}

// traceEntry is one row of the predecessor table
type traceEntry struct {
	state    *inventory.State
	prevKey  string
	action   int
	edgeCost float64
}

// Engine runs best-first search over inventory states. One Engine may
// serve many invocations; the per-search tables are local to Search and
// never shared. The catalog is read-only, so no locking is involved.
type Engine struct {
	catalog  *recipe.Catalog
	policy   Policy
	clock    shared.Clock
	observer SearchObserver

	// Verbose enables throttled progress logging from the hot loop
	Verbose bool
}

// NewEngine creates a search engine over the given read-only catalog
func NewEngine(catalog *recipe.Catalog, policy Policy, clock shared.Clock, observer SearchObserver) *Engine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Engine{
		catalog:  catalog,
		policy:   policy,
		clock:    clock,
		observer: observer,
	}
}

// Search runs one bounded best-first search from start toward goal.
// The budget is sampled once at the top of each outer iteration; an
// expansion already underway completes before the budget is re-checked.
func (e *Engine) Search(start *inventory.State, goal Goal, budget time.Duration) *Result {
	began := e.clock.Now()
	deadline := began.Add(budget)

	costSoFar := map[string]float64{start.Key(): 0}
	cameFrom := map[string]traceEntry{start.Key(): {state: start, action: startAction}}

	queue := &stateQueue{{priority: 0, cost: 0, state: start}}
	heap.Init(queue)

	progress := rate.NewLimiter(rate.Every(time.Second), 1)
	expanded := 0

	for queue.Len() > 0 {
		if e.clock.Now().After(deadline) {
			return e.finish(false, nil, began, expanded)
		}

		entry := heap.Pop(queue).(queueEntry)
		key := entry.state.Key()

		// A cheaper path to this state was relaxed after the push;
		// re-expanding the stale entry would be redundant.
		if entry.cost > costSoFar[key] {
			e.observer.StaleEntrySkipped()
			continue
		}

		if goal.SatisfiedBy(entry.state) {
			plan := reconstruct(cameFrom, e.catalog, key)
			return e.finish(true, plan, began, expanded)
		}

		expanded++
		e.observer.StateExpanded()
		if e.Verbose && progress.Allow() {
			log.Printf("search: %d states expanded, %d queued, best cost %.1f",
				expanded, queue.Len(), entry.cost)
		}

		e.catalog.Successors(entry.state, func(action int, next *inventory.State, edgeCost float64) bool {
			candidate := entry.cost + edgeCost
			nextKey := next.Key()
			best, seen := costSoFar[nextKey]
			if seen && candidate >= best {
				return true
			}

			costSoFar[nextKey] = candidate
			cameFrom[nextKey] = traceEntry{
				state:    next,
				prevKey:  key,
				action:   action,
				edgeCost: edgeCost,
			}

			priority := candidate + e.policy.Bias(entry.state, next, action)
			if math.IsInf(priority, 1) {
				// infinite bias permanently excludes this transition
				e.observer.TransitionPruned()
				return true
			}

			heap.Push(queue, queueEntry{priority: priority, cost: candidate, state: next})
			e.observer.SuccessorPushed()
			return true
		})
	}

	// Queue exhausted: every reachable, unpruned state was expanded
	return e.finish(false, nil, began, expanded)
}

func (e *Engine) finish(found bool, plan *Plan, began time.Time, expanded int) *Result {
	elapsed := e.clock.Now().Sub(began)
	e.observer.SearchFinished(found, elapsed)
	return &Result{
		Found:          found,
		Plan:           plan,
		Elapsed:        elapsed,
		StatesExpanded: expanded,
	}
}

// reconstruct walks the predecessor table from the goal state back to
// the start sentinel, prepending steps as it goes
func reconstruct(cameFrom map[string]traceEntry, catalog *recipe.Catalog, goalKey string) *Plan {
	var steps []PlanStep
	for key := goalKey; ; {
		entry := cameFrom[key]
		if entry.action == startAction {
			break
		}
		steps = append(steps, PlanStep{
			Action: catalog.Recipe(entry.action).Name(),
			State:  entry.state,
			Cost:   entry.edgeCost,
		})
		key = entry.prevKey
	}

	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return NewPlan(steps)
}
