// Package variant implements the variant generator: it runs the
// ordering/assignment/repair/gap-fill/stats pipeline many times under
// different strategies and seeds, scores each candidate, de-duplicates
// by assignment signature, and returns the top K.
package variant

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/assign"
	"github.com/weekshift/weekshift/pkg/scheduler/gapfill"
	"github.com/weekshift/weekshift/pkg/scheduler/order"
	"github.com/weekshift/weekshift/pkg/scheduler/repair"
	"github.com/weekshift/weekshift/pkg/scheduler/scarcity"
	"github.com/weekshift/weekshift/pkg/scheduler/score"
	"github.com/weekshift/weekshift/pkg/stats"
)

// Result is the outcome of the variant generator.
type Result struct {
	Variants  []model.ScheduleResult
	BestIndex int
}

// plan is one (strategy, seed) run of the pipeline.
type plan struct {
	strategy order.Strategy
	rng      *rand.Rand
}

// Generate runs numCandidates candidates — up to ⌈numCandidates/5⌉ per
// strategy, taken in order.Strategies order and stopping once
// numCandidates runs are planned, so when numCandidates isn't a
// multiple of 5 the later strategies (random last) get fewer runs —
// scores each, and returns the
// numTopVariants highest-scored candidates with distinct assignment
// signatures (padding from the highest-scored remainder if fewer
// unique signatures exist than requested).
func Generate(problem model.Problem, weekStart time.Time, numCandidates, numTopVariants int, seed int64) Result {
	plans := buildPlans(numCandidates, seed)
	candidates := runPlans(problem, weekStart, plans)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	top := selectTop(candidates, numTopVariants)

	variants := make([]model.ScheduleResult, len(top))
	for i, c := range top {
		variants[i] = c
	}

	return Result{Variants: variants, BestIndex: 0}
}

func buildPlans(numCandidates int, seed int64) []plan {
	perStrategy := (numCandidates + len(order.Strategies) - 1) / len(order.Strategies)

	var plans []plan
	offset := int64(0)
	for _, strat := range order.Strategies {
		for i := 0; i < perStrategy && len(plans) < numCandidates; i++ {
			plans = append(plans, plan{strategy: strat, rng: rand.New(rand.NewSource(seed + offset))})
			offset++
		}
	}
	for len(plans) < numCandidates {
		plans = append(plans, plan{strategy: order.Random, rng: rand.New(rand.NewSource(seed + offset))})
		offset++
	}
	return plans[:numCandidates]
}

// runPlans executes every plan's pipeline. Each plan owns its own RNG
// (split per worker, per §5's concurrency note), so results are
// parallelizable without losing determinism for a fixed seed; results
// are written back at the plan's own index to keep output order
// independent of goroutine completion order.
func runPlans(problem model.Problem, weekStart time.Time, plans []plan) []model.ScheduleResult {
	results := make([]model.ScheduleResult, len(plans))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(plans) {
		workers = len(plans)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runOne(problem, weekStart, plans[i])
			}
		}()
	}
	for i := range plans {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func runOne(problem model.Problem, weekStart time.Time, p plan) model.ScheduleResult {
	scarcityCounts := scarcity.Analyze(problem)
	ordered := order.Order(problem.Requirements, p.strategy, scarcityCounts, p.rng)

	assignResult := assign.Run(problem, ordered, weekStart, p.rng)
	repair.Run(problem, assignResult.State)
	gapfill.Run(problem, weekStart, assignResult.State)

	st, hourWarnings := stats.Compute(problem, assignResult.State)
	warnings := append(append([]model.ScheduleWarning{}, assignResult.Warnings...), hourWarnings...)

	candidateScore := score.Compute(problem, st, warnings)

	return model.ScheduleResult{
		Schedule: model.Schedule{
			WeekStartDate: weekStart,
			Shifts:        assignResult.State.Shifts,
			GeneratedAt:   weekStart,
		},
		Stats:    st,
		Warnings: warnings,
		Score:    candidateScore,
	}
}

// selectTop walks candidates (already sorted descending by score) and
// admits only signatures not seen yet, stopping at n; if fewer than n
// unique signatures exist, it pads from the highest-scored remainder.
func selectTop(candidates []model.ScheduleResult, n int) []model.ScheduleResult {
	seen := make(map[string]struct{})
	var unique []model.ScheduleResult
	var rest []model.ScheduleResult

	for _, c := range candidates {
		sig := signature(c.Schedule)
		if _, ok := seen[sig]; ok {
			rest = append(rest, c)
			continue
		}
		seen[sig] = struct{}{}
		unique = append(unique, c)
		if len(unique) == n {
			return unique
		}
	}

	for _, c := range rest {
		if len(unique) == n {
			break
		}
		unique = append(unique, c)
	}
	return unique
}

// signature is the sorted multiset of "requirementId:staffId" pairs,
// the de-duplication key: two schedules with the same score but
// different staff on the same requirement are meaningfully different.
func signature(sched model.Schedule) string {
	pairs := make([]string, len(sched.Shifts))
	for i, s := range sched.Shifts {
		pairs[i] = fmt.Sprintf("%s:%s", s.RequirementID, s.StaffID)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}
