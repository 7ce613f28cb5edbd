package search

import "time"

// RunInfo is the read-only view of a Search's progress that stop criteria
// are polled against. Search implements RunInfo.
type RunInfo interface {
	Steps() int
	TimeSinceStarted() time.Duration
	StepsSinceLastImprovement() int
	BestEverEvaluationValue() (float64, bool)
	SupportsCurrentSolution() bool
}

// StopCriterion is a pollable predicate queried at least once per
// completed step (and, for long phases such as steepest descent's move
// enumeration, possibly more often).
type StopCriterion interface {
	ShouldStop(info RunInfo) bool
}

// LocalSearchOnlyCriterion is implemented by stop criteria that only make
// sense against a search with a "current solution" distinct from its
// best-ever solution (e.g. stall detection against the current, not the
// best-ever). AddStopCriterion raises ErrIncompatibleStopCriterion when
// such a criterion is attached to a search that does not support it.
type LocalSearchOnlyCriterion interface {
	RequiresCurrentSolution() bool
}

// maxRuntime stops a run once its wall-clock duration reaches Limit.
type maxRuntime struct {
	limit time.Duration
}

// MaxRuntime returns a StopCriterion that stops the run once
// TimeSinceStarted() reaches limit.
func MaxRuntime(limit time.Duration) StopCriterion {
	return maxRuntime{limit: limit}
}

func (c maxRuntime) ShouldStop(info RunInfo) bool {
	return info.TimeSinceStarted() >= c.limit
}

// maxSteps stops a run after Limit completed steps.
type maxSteps struct {
	limit int
}

// MaxSteps returns a StopCriterion that stops the run after limit
// completed steps.
func MaxSteps(limit int) StopCriterion {
	return maxSteps{limit: limit}
}

func (c maxSteps) ShouldStop(info RunInfo) bool {
	return info.Steps() >= c.limit
}

// maxStepsWithoutImprovement stops a run once Limit consecutive steps have
// passed without the best-ever solution improving.
type maxStepsWithoutImprovement struct {
	limit int
}

// MaxStepsWithoutImprovement returns a StopCriterion requiring current-
// solution semantics: it stops the run once limit consecutive steps have
// passed without a new best-ever solution.
func MaxStepsWithoutImprovement(limit int) StopCriterion {
	return maxStepsWithoutImprovement{limit: limit}
}

func (c maxStepsWithoutImprovement) ShouldStop(info RunInfo) bool {
	return info.StepsSinceLastImprovement() >= c.limit
}

func (c maxStepsWithoutImprovement) RequiresCurrentSolution() bool { return true }

// targetEvaluation stops a run as soon as the best-ever evaluation reaches
// or surpasses Target (in the direction appropriate to Minimizing).
type targetEvaluation struct {
	target     float64
	minimizing bool
}

// TargetEvaluation returns a StopCriterion that stops the run as soon as
// the best-ever evaluation's value reaches target (<=target when
// minimizing, >=target when maximizing).
func TargetEvaluation(target float64, minimizing bool) StopCriterion {
	return targetEvaluation{target: target, minimizing: minimizing}
}

func (c targetEvaluation) ShouldStop(info RunInfo) bool {
	v, ok := info.BestEverEvaluationValue()
	if !ok {
		return false
	}
	if c.minimizing {
		return v <= c.target
	}
	return v >= c.target
}
