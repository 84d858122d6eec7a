package toolface

import (
	"fmt"
	"math"

	"github.com/npillmayer/drillpath"
	"gonum.org/v1/gonum/optimize"
)

// Config bounds the search of Solver.MaxChange. The search is a
// one-dimensional Nelder–Mead simplex (gonum's optimize.NelderMead) which
// starts at tool face Start with an initial simplex width of Step.
// It converges when the objective has not improved by more than
// FTolerance for StallIterations consecutive iterations.
type Config struct {
	Start           float64 // initial tool face
	Step            float64 // initial simplex width
	MaxIterations   int     // iteration budget, the starting point counts as first iteration
	MaxEvaluations  int     // evaluation budget, 0 for none
	FTolerance      float64 // convergence: least significant improvement of Δε
	StallIterations int     // convergence: iterations without significant improvement
}

// DefaultConfig returns the search configuration used by MaxChange.
func DefaultConfig() Config {
	return Config{
		Start:           0,
		Step:            0.00025,
		MaxIterations:   500,
		FTolerance:      1e-14,
		StallIterations: 20,
	}
}

// Validate checks a search configuration.
func (cfg Config) Validate() error {
	if !drillpath.Finite(cfg.Start) || !(cfg.Step > 0) || math.IsInf(cfg.Step, 0) {
		return fmt.Errorf("%w: search needs finite start and positive step", drillpath.ErrInvalidInput)
	}
	if cfg.MaxIterations < 1 || cfg.MaxEvaluations < 0 {
		return fmt.Errorf("%w: iteration budget must be positive, is %d", drillpath.ErrInvalidInput,
			cfg.MaxIterations)
	}
	if !(cfg.FTolerance > 0) || cfg.StallIterations < 1 {
		return fmt.Errorf("%w: convergence needs positive tolerance and stall count", drillpath.ErrInvalidInput)
	}
	return nil
}

// Solver searches tool faces. A Solver holds no state besides its
// configuration and may be shared between goroutines.
type Solver struct {
	cfg Config
}

// NewSolver creates a solver with configuration cfg.
func NewSolver(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg}, nil
}

// Config returns the solver's configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// Result is the outcome of a tool face search.
type Result struct {
	Gamma       float64 // tool face γ*
	DeltaEps    float64 // direction change Δε(γ*)
	Inc2        float64 // final inclination at γ*
	Iterations  int     // iterations used
	Evaluations int     // objective evaluations
	Converged   bool    // tolerances met within the iteration budget
}

// MaxChange finds the tool face γ* which maximizes the direction change of
// a run with deflection beta starting at inclination inc1, using the
// default search configuration.
func MaxChange(beta, inc1 float64) (gamma, deltaEps float64, err error) {
	s := &Solver{cfg: DefaultConfig()}
	r, err := s.MaxChange(beta, inc1)
	return r.Gamma, r.DeltaEps, err
}

// MaxChange finds the tool face γ* which maximizes the direction change Δε
// of a run with deflection beta starting at inclination inc1.
//
// Δε is odd in γ, so the maximum of Δε coincides with the maximum of |Δε|;
// the mirrored tool face −γ* turns by the same amount the other way.
// The search is local: for β ≥ inc1 the denominator of Δε has a pole and
// the search may end next to it. Non-convergence within the iteration
// budget is reported through Result.Converged, not as an error.
func (s *Solver) MaxChange(beta, inc1 float64) (Result, error) {
	if err := checkFinite(beta, inc1); err != nil {
		return Result{}, err
	}
	if drillpath.Is0(math.Sin(beta)) {
		return Result{}, fmt.Errorf("%w: deflection β=%g produces no direction change",
			drillpath.ErrDomain, beta)
	}
	objective := func(x []float64) float64 {
		de, _, err := Forward(beta, x[0], inc1)
		if err != nil {
			return math.Inf(1)
		}
		return -de
	}
	res, err := optimize.Minimize(optimize.Problem{Func: objective}, []float64{s.cfg.Start},
		s.settings(), s.method())
	if err != nil || res == nil {
		return Result{}, fmt.Errorf("%w: tool face search failed for β=%g, inc1=%g: %v",
			drillpath.ErrDomain, beta, inc1, err)
	}
	r := Result{
		Gamma:       res.X[0],
		Iterations:  res.MajorIterations,
		Evaluations: res.FuncEvaluations,
		Converged:   converged(res.Status),
	}
	if r.DeltaEps, r.Inc2, err = Forward(beta, r.Gamma, inc1); err != nil {
		return Result{}, fmt.Errorf("tool face search failed for β=%g, inc1=%g: %w", beta, inc1, err)
	}
	if !r.Converged {
		tracer().Infof("tool face search not converged after %d iterations (%v)", r.Iterations, res.Status)
	}
	tracer().Infof("max direction change %.4f° at tool face %.4f° (%d iterations)",
		drillpath.ToDeg(r.DeltaEps), drillpath.ToDeg(r.Gamma), r.Iterations)
	return r, nil
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.FunctionConvergence, optimize.MethodConverge, optimize.Success:
		return true
	}
	return false
}

func (s *Solver) settings() *optimize.Settings {
	return &optimize.Settings{
		MajorIterations: s.cfg.MaxIterations,
		FuncEvaluations: s.cfg.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   s.cfg.FTolerance,
			Iterations: s.cfg.StallIterations,
		},
		Recorder: simplexTracer{},
	}
}

// Nelder–Mead coefficients: reflection, expansion, contraction, shrink.
func (s *Solver) method() *optimize.NelderMead {
	return &optimize.NelderMead{
		Reflection:  1,
		Expansion:   2,
		Contraction: 0.5,
		Shrink:      0.5,
		SimplexSize: s.cfg.Step,
	}
}

// simplexTracer traces the best point of every search iteration.
type simplexTracer struct{}

func (simplexTracer) Init() error { return nil }

func (simplexTracer) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op == optimize.MajorIteration {
		tracer().Debugf("search #%d: γ=%.8f Δε=%.10f", stats.MajorIterations, loc.X[0], -loc.F)
	}
	return nil
}
