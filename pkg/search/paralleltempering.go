package search

import (
	"context"
	"math"
	"math/rand"
	"sync"
)

// replica is one of ParallelTempering's independent Metropolis chains,
// each pinned to its own temperature.
type replica[S any] struct {
	temperature float64
	rng         *rand.Rand
	solution    S
	eval        Evaluation
	valid       Validation
}

// ParallelTempering (replica exchange Monte Carlo) runs one Metropolis
// chain per entry in Temperatures concurrently — grounded on the
// goroutine-per-worker, WaitGroup-joined fan-out idiom used elsewhere in
// this module for bounded parallel work — and periodically proposes
// swapping the states of adjacent-temperature chains so that a chain stuck
// in a local optimum at low temperature can borrow a better state explored
// by a hotter, more mobile chain. The best solution seen by any chain is
// reported to the Search as both its current and, if it improves, its
// best-ever solution. Like Metropolis, it never terminates naturally.
type ParallelTempering[S Solution[S], D any] struct {
	Neighbourhood Neighbourhood[S]
	Temperatures  []float64
	SwapEvery     int

	replicas    []*replica[S]
	roundsSince int
}

// NewParallelTempering returns a ParallelTempering algorithm with one
// replica per entry of temperatures (which need not be sorted, but
// adjacent-index swap proposals are most effective when they are
// ascending), attempting replica swaps every swapEvery rounds.
func NewParallelTempering[S Solution[S], D any](n Neighbourhood[S], temperatures []float64, swapEvery int) *ParallelTempering[S, D] {
	if swapEvery <= 0 {
		swapEvery = 1
	}
	return &ParallelTempering[S, D]{Neighbourhood: n, Temperatures: temperatures, SwapEvery: swapEvery}
}

// GeometricTemperatures lays out replicas temperatures geometrically
// between tMin and tMax — T_r = tMin*(tMax/tMin)^((r-1)/(R-1)) for
// r = 1..replicas — each multiplied by scale, a single knob for shifting
// the whole ladder up or down to tune swap acceptance rates without
// recomputing every entry by hand. A non-positive scale is treated as 1.
func GeometricTemperatures(tMin, tMax float64, replicas int, scale float64) []float64 {
	if replicas <= 0 {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	temps := make([]float64, replicas)
	if replicas == 1 {
		temps[0] = tMin * scale
		return temps
	}
	ratio := tMax / tMin
	for r := 0; r < replicas; r++ {
		temps[r] = tMin * math.Pow(ratio, float64(r)/float64(replicas-1)) * scale
	}
	return temps
}

// NewGeometricParallelTempering returns a ParallelTempering algorithm whose
// replica temperatures are spaced geometrically between tMin and tMax (see
// GeometricTemperatures) instead of requiring the caller to pre-space a raw
// ladder by hand.
func NewGeometricParallelTempering[S Solution[S], D any](n Neighbourhood[S], tMin, tMax float64, replicas int, scale float64, swapEvery int) *ParallelTempering[S, D] {
	return NewParallelTempering[S, D](n, GeometricTemperatures(tMin, tMax, replicas, scale), swapEvery)
}

func (a *ParallelTempering[S, D]) SupportsCurrentSolution() bool { return true }

func (a *ParallelTempering[S, D]) init(s *Search[S, D]) {
	a.replicas = make([]*replica[S], len(a.Temperatures))
	problem := s.Problem()
	for i, t := range a.Temperatures {
		sol := problem.CreateRandomSolution(s.RNG())
		a.replicas[i] = &replica[S]{
			temperature: t,
			rng:         rand.New(rand.NewSource(s.RNG().Int63())),
			solution:    sol,
			eval:        problem.Evaluate(sol),
			valid:       problem.Validate(sol),
		}
	}
}

// Step runs one Metropolis round on every replica concurrently, then
// (every SwapEvery rounds) proposes adjacent-temperature state exchanges,
// and finally reports the best valid replica to the Search.
func (a *ParallelTempering[S, D]) Step(ctx context.Context, s *Search[S, D]) (bool, error) {
	if a.replicas == nil {
		a.init(s)
	}
	problem := s.Problem()

	var wg sync.WaitGroup
	errs := make([]error, len(a.replicas))
	for i, r := range a.replicas {
		wg.Add(1)
		go func(i int, r *replica[S]) {
			defer wg.Done()
			errs[i] = stepReplica(problem, a.Neighbourhood, r)
		}(i, r)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return false, err
		}
	}

	a.roundsSince++
	if a.roundsSince >= a.SwapEvery {
		a.roundsSince = 0
		a.attemptSwaps(s.RNG(), problem)
	}

	best := a.replicas[0]
	for _, r := range a.replicas[1:] {
		if r.valid.Passed() && (!best.valid.Passed() || problem.IsBetterThan(r.eval, best.eval)) {
			best = r
		}
	}
	if best.valid.Passed() {
		s.ReplaceCurrentSolution(best.solution.Copy(), best.eval, best.valid)
	}
	return true, nil
}

// stepReplica runs one Metropolis move attempt on r's own solution, using
// its own private RNG so it is safe to call concurrently for distinct
// replicas.
func stepReplica[S any, D any](problem Problem[S, D], n Neighbourhood[S], r *replica[S]) error {
	m, ok := n.RandomMove(r.solution, r.rng)
	if !ok {
		return nil
	}
	valid, err := problem.ValidateDelta(m, r.solution, r.valid)
	if err != nil {
		return err
	}
	if !valid.Passed() {
		return nil
	}
	eval, err := problem.EvaluateDelta(m, r.solution, r.eval)
	if err != nil {
		return err
	}

	accept := problem.IsBetterThan(eval, r.eval)
	if !accept && r.temperature > 0 {
		delta := math.Abs(eval.Value() - r.eval.Value())
		accept = r.rng.Float64() < math.Exp(-delta/r.temperature)
	}
	if !accept {
		return nil
	}
	if err := m.Apply(r.solution); err != nil {
		return err
	}
	r.eval, r.valid = eval, valid
	return nil
}

// attemptSwaps walks adjacent replica pairs once and proposes exchanging
// their states with the standard replica-exchange acceptance probability
// min(1, exp((1/T_i - 1/T_j) * (E_j - E_i))), where E is the objective
// value for a maximizing objective and its negation for a minimizing one.
// A colder replica therefore always takes over its hotter neighbour's
// state when that state is better, and takes a worse one only with the
// exponential probability.
func (a *ParallelTempering[S, D]) attemptSwaps(rng *rand.Rand, problem Problem[S, D]) {
	sign := -1.0
	if problem.IsBetterThan(NewSimpleEvaluation(1), NewSimpleEvaluation(0)) {
		sign = 1.0
	}
	for i := 0; i+1 < len(a.replicas); i++ {
		ri, rj := a.replicas[i], a.replicas[i+1]
		if !ri.valid.Passed() || !rj.valid.Passed() {
			continue
		}
		ei, ej := sign*ri.eval.Value(), sign*rj.eval.Value()
		delta := (1/ri.temperature - 1/rj.temperature) * (ej - ei)
		p := 1.0
		if delta < 0 {
			p = math.Exp(delta)
		}
		if rng.Float64() < p {
			ri.solution, rj.solution = rj.solution, ri.solution
			ri.eval, rj.eval = rj.eval, ri.eval
			ri.valid, rj.valid = rj.valid, ri.valid
		}
	}
}
