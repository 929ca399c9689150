// Package evaluation implements the batch evaluation framework for
// running programs against maps and checking their outcomes.
package evaluation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TheCYPER/TheVaultRunner/internal/examples"
	"github.com/TheCYPER/TheVaultRunner/internal/interp"
	"github.com/TheCYPER/TheVaultRunner/internal/telemetry"
	"github.com/TheCYPER/TheVaultRunner/internal/world"
)

// Case is one evaluation case: a program, the map it runs on, and the
// outcome it is expected to produce.
type Case struct {
	Name          string          `json:"name"`
	Source        string          `json:"-"`
	SourceFile    string          `json:"source_file"`
	MapName       string          `json:"map"`
	MapRows       []string        `json:"-"`
	StartX        int             `json:"start_x"`
	StartY        int             `json:"start_y"`
	Facing        world.Direction `json:"-"`
	ExpectSuccess bool            `json:"expect_success"`
}

// CaseResult is the outcome of evaluating a single case.
type CaseResult struct {
	Name     string `json:"name"`
	Expected bool   `json:"expected"`
	Actual   bool   `json:"actual"`
	Steps    int    `json:"steps"`
	Passed   bool   `json:"passed"`
	Error    string `json:"error,omitempty"`
	Duration time.Duration
}

// RunResult is the outcome of an entire evaluation run.
type RunResult struct {
	Cases       []CaseResult `json:"cases"`
	TotalCases  int          `json:"total_cases"`
	PassedCases int          `json:"passed_cases"`
	FailedCases int          `json:"failed_cases"`
	Duration    time.Duration
	Timestamp   time.Time `json:"timestamp"`
}

// CasesFromCatalog builds the evaluation cases from the embedded
// example catalog.
func CasesFromCatalog() ([]Case, error) {
	all, err := examples.All()
	if err != nil {
		return nil, err
	}
	cases := make([]Case, 0, len(all))
	for i := range all {
		e := &all[i]
		build, ok := world.BuiltinMaps()[e.Map]
		if !ok {
			return nil, fmt.Errorf("example %q references unknown map %q", e.Name, e.Map)
		}
		dir, err := world.ParseDirection(e.Facing)
		if err != nil {
			return nil, fmt.Errorf("example %q: %w", e.Name, err)
		}
		src, err := examples.Source(e)
		if err != nil {
			return nil, fmt.Errorf("example %q: %w", e.Name, err)
		}
		cases = append(cases, Case{
			Name:          e.Name,
			Source:        src,
			SourceFile:    e.SourceFile,
			MapName:       e.Map,
			MapRows:       build(),
			StartX:        e.Start.X,
			StartY:        e.Start.Y,
			Facing:        dir,
			ExpectSuccess: e.Success,
		})
	}
	return cases, nil
}

// RunnerOptions configures the evaluation runner.
type RunnerOptions struct {
	// Workers caps how many cases run concurrently. Zero means one
	// worker per case.
	Workers int
	// Metrics receives per-case run observations when non-nil.
	Metrics *telemetry.Metrics
}

// Runner executes evaluation cases, each against a fresh world.
type Runner struct {
	workers int
	metrics *telemetry.Metrics
}

// NewRunner creates an evaluation runner.
func NewRunner(opts RunnerOptions) *Runner {
	return &Runner{workers: opts.Workers, metrics: opts.Metrics}
}

// Run executes all cases. Cases run concurrently; each owns its own
// grid, bot, and interpreter, so they share nothing. The per-case
// result order matches the input order.
func (r *Runner) Run(ctx context.Context, cases []Case) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		Cases:      make([]CaseResult, len(cases)),
		TotalCases: len(cases),
		Timestamp:  startTime,
	}

	g, ctx := errgroup.WithContext(ctx)
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}
	for i := range cases {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Cases[i] = r.runCase(&cases[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, cr := range result.Cases {
		if cr.Passed {
			result.PassedCases++
		} else {
			result.FailedCases++
		}
	}
	result.Duration = time.Since(startTime)
	return result, nil
}

func (r *Runner) runCase(c *Case) CaseResult {
	start := time.Now()

	cr := CaseResult{
		Name:     c.Name,
		Expected: c.ExpectSuccess,
	}

	grid, err := world.ParseMap(c.MapRows)
	if err != nil {
		cr.Error = fmt.Sprintf("bad map: %v", err)
		cr.Duration = time.Since(start)
		return cr
	}

	bot := world.NewBot(grid, c.StartX, c.StartY, c.Facing)
	res := interp.New(bot).Run(c.Source, c.SourceFile)

	cr.Actual = res.Success
	cr.Steps = res.Steps
	cr.Error = res.Diagnostic
	cr.Passed = res.Diagnostic == "" && res.Success == c.ExpectSuccess
	cr.Duration = time.Since(start)

	if r.metrics != nil {
		status := "failed"
		switch {
		case res.Diagnostic != "":
			status = "fault"
		case res.Success:
			status = "solved"
		}
		r.metrics.RecordRun(c.MapName, status, res.Steps, cr.Duration)
	}
	return cr
}
