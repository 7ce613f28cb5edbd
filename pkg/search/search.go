package search

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Algorithm implements the per-step routine of a concrete local-search
// algorithm. Step is invoked once per iteration of the driver loop started
// by Search.Start; it reports whether the search should continue (false
// signals natural termination — e.g. steepest descent found no improving
// move, or an exhaustive search's iterator is drained).
type Algorithm[S any, D any] interface {
	Step(ctx context.Context, s *Search[S, D]) (bool, error)

	// SupportsCurrentSolution reports whether this algorithm maintains a
	// "current" solution distinct from the best-ever solution. Random
	// search and exhaustive search do not (each step produces an
	// independent candidate), so NewCurrentSolution never fires for them,
	// the run's initial solution is not offered as a best-ever candidate,
	// and listeners/stop criteria requiring current-solution semantics
	// are rejected at attachment time.
	SupportsCurrentSolution() bool
}

// StopCriterionHandle identifies a StopCriterion previously registered
// with a Search, returned by AddStopCriterion so RemoveStopCriterion can
// target a specific registration without relying on interface equality
// (which panics for criteria holding non-comparable state).
type StopCriterionHandle struct {
	id uuid.UUID
}

type stopCriterionEntry struct {
	id        uuid.UUID
	criterion StopCriterion
}

// Search is the generic search-state machine described in SPEC_FULL.md
// §4.8: it owns the problem reference, the current and best-ever
// solutions, the step counter, the status, stop criteria, and listeners.
// The concrete per-step behaviour is delegated to an Algorithm.
type Search[S Solution[S], D any] struct {
	name      string
	problem   Problem[S, D]
	algorithm Algorithm[S, D]
	logger    *zap.SugaredLogger
	clock     Clock
	rng       *rand.Rand
	cache     MoveCache[S]

	hasInitial      bool
	initialSolution S

	// Run-local state: touched only by the goroutine executing Start,
	// except stopCriteria, listenerOrder and listeners, which
	// AddStopCriterion, AddListener and their Remove counterparts also
	// change under mu.
	current             S
	hasCurrent          bool
	currentEval         Evaluation
	currentValid        Validation
	step                int
	lastImprovementStep int
	runStart            time.Time
	stopCriteria        []stopCriterionEntry
	listenerOrder       []uuid.UUID
	listeners           map[uuid.UUID]Listener[S, D]

	// Shared state: guarded by mu because external goroutines may read or
	// mutate it concurrently with a running search.
	mu        sync.Mutex
	status    Status
	cancel    context.CancelFunc
	hasBest   bool
	bestEver  S
	bestEval  Evaluation
	bestValid Validation
}

// SearchOption configures a Search at construction time.
type SearchOption[S Solution[S], D any] func(*Search[S, D])

// WithLogger attaches a structured logger; the default is a no-op logger.
func WithLogger[S Solution[S], D any](l *zap.SugaredLogger) SearchOption[S, D] {
	return func(s *Search[S, D]) { s.logger = l }
}

// WithClock overrides the wall clock used for elapsed-time bookkeeping,
// primarily so tests can inject a clock.Mock.
func WithClock[S Solution[S], D any](c Clock) SearchOption[S, D] {
	return func(s *Search[S, D]) { s.clock = c }
}

// WithSeed seeds the search's random number generator for reproducible
// runs; without it, the generator is seeded from OS entropy.
func WithSeed[S Solution[S], D any](seed int64) SearchOption[S, D] {
	return func(s *Search[S, D]) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithInitialSolution supplies the solution a run starts from; without it,
// Problem.CreateRandomSolution is used.
func WithInitialSolution[S Solution[S], D any](initial S) SearchOption[S, D] {
	return func(s *Search[S, D]) {
		s.hasInitial = true
		s.initialSolution = initial
	}
}

// WithMoveCache overrides the per-step move cache; the default is a
// MapMoveCache.
func WithMoveCache[S Solution[S], D any](c MoveCache[S]) SearchOption[S, D] {
	return func(s *Search[S, D]) { s.cache = c }
}

// NewSearch builds an IDLE search over problem, driven by algorithm.
func NewSearch[S Solution[S], D any](name string, problem Problem[S, D], algorithm Algorithm[S, D], opts ...SearchOption[S, D]) *Search[S, D] {
	s := &Search[S, D]{
		name:      name,
		problem:   problem,
		algorithm: algorithm,
		logger:    newNopLogger(),
		clock:     SystemClock,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:     NewMapMoveCache[S](),
		status:    StatusIdle,
		listeners: make(map[uuid.UUID]Listener[S, D]),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Search[S, D]) Name() string               { return s.name }
func (s *Search[S, D]) Problem() Problem[S, D]     { return s.problem }
func (s *Search[S, D]) RNG() *rand.Rand            { return s.rng }
func (s *Search[S, D]) Cache() MoveCache[S]        { return s.cache }
func (s *Search[S, D]) Logger() *zap.SugaredLogger { return s.logger }
func (s *Search[S, D]) Clock() Clock               { return s.clock }

func (s *Search[S, D]) SupportsCurrentSolution() bool { return s.algorithm.SupportsCurrentSolution() }

// CurrentSolution returns the solution the driving algorithm is currently
// working from. It is only meaningful while the search is RUNNING, and is
// intended for use by Algorithm implementations and by listeners invoked
// synchronously from the run goroutine.
func (s *Search[S, D]) CurrentSolution() S            { return s.current }
func (s *Search[S, D]) CurrentEvaluation() Evaluation { return s.currentEval }
func (s *Search[S, D]) CurrentValidation() Validation { return s.currentValid }

// EvaluateMove validates and evaluates m against the current solution,
// preferring the move cache and delta paths, without mutating the current
// solution. If the move is rejected by a mandatory constraint, eval is nil
// and valid.Passed() is false.
func (s *Search[S, D]) EvaluateMove(m Move[S]) (Evaluation, Validation, error) {
	if eval, valid, ok := s.cache.Get(m); ok {
		return eval, valid, nil
	}
	valid, err := s.problem.ValidateDelta(m, s.current, s.currentValid)
	if err != nil {
		return nil, nil, err
	}
	var eval Evaluation
	if valid.Passed() {
		eval, err = s.problem.EvaluateDelta(m, s.current, s.currentEval)
		if err != nil {
			return nil, nil, err
		}
	}
	s.cache.Put(m, eval, valid)
	return eval, valid, nil
}

// AcceptMove permanently applies m to the current solution, recording the
// evaluation/validation the caller already computed (normally via
// EvaluateMove). It clears the move cache, fires new_current, and updates
// best-ever bookkeeping.
func (s *Search[S, D]) AcceptMove(m Move[S], eval Evaluation, valid Validation) error {
	if err := m.Apply(s.current); err != nil {
		return err
	}
	s.currentEval = eval
	s.currentValid = valid
	s.cache.Clear()
	s.fireNewCurrent(s.current)
	s.ConsiderForBestEver(s.current, eval, valid)
	return nil
}

// ReplaceCurrentSolution swaps in sol as the new current solution wholesale
// (used by algorithms that generate a fresh candidate each step, or that
// restart from a new point, rather than mutating the existing one via a
// Move).
func (s *Search[S, D]) ReplaceCurrentSolution(sol S, eval Evaluation, valid Validation) {
	s.current = sol
	s.currentEval = eval
	s.currentValid = valid
	s.hasCurrent = true
	s.cache.Clear()
	s.fireNewCurrent(sol)
	s.ConsiderForBestEver(sol, eval, valid)
}

// ConsiderForBestEver updates the best-ever solution if sol strictly
// improves on it (equal evaluations do not replace the incumbent), and
// fires new_best when it does. Rejected solutions (valid != nil and
// !valid.Passed()) are never considered.
func (s *Search[S, D]) ConsiderForBestEver(sol S, eval Evaluation, valid Validation) bool {
	if valid != nil && !valid.Passed() {
		return false
	}
	s.mu.Lock()
	if s.hasBest && !s.problem.IsBetterThan(eval, s.bestEval) {
		s.mu.Unlock()
		return false
	}
	snapshot := sol.Copy()
	s.bestEver = snapshot
	s.bestEval = eval
	s.bestValid = valid
	s.hasBest = true
	s.mu.Unlock()

	s.lastImprovementStep = s.step
	s.logger.Debugw("new best-ever solution", "search", s.name, "step", s.step, "value", eval.Value())
	s.fireNewBest(snapshot, eval, valid)
	return true
}

// --- RunInfo -----------------------------------------------------------

func (s *Search[S, D]) Steps() int { return s.step }

func (s *Search[S, D]) TimeSinceStarted() time.Duration {
	if s.runStart.IsZero() {
		return 0
	}
	return s.clock.Now().Sub(s.runStart)
}

func (s *Search[S, D]) StepsSinceLastImprovement() int { return s.step - s.lastImprovementStep }

func (s *Search[S, D]) BestEverEvaluationValue() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasBest {
		return 0, false
	}
	return s.bestEval.Value(), true
}

// --- External driver API -------------------------------------------------

// Status returns the search's current lifecycle state.
func (s *Search[S, D]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// BestSolution returns a deep copy of the best-ever solution found across
// every run of this search so far.
func (s *Search[S, D]) BestSolution() (S, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero S
	if !s.hasBest {
		return zero, false
	}
	return s.bestEver.Copy(), true
}

func (s *Search[S, D]) BestSolutionEvaluation() (Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasBest {
		return nil, false
	}
	return s.bestEval, true
}

func (s *Search[S, D]) BestSolutionValidation() (Validation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasBest {
		return nil, false
	}
	return s.bestValid, true
}

// Stop requests cooperative termination of a running (or initializing)
// search. It is a no-op if the search is not currently running.
func (s *Search[S, D]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if (s.status == StatusInitializing || s.status == StatusRunning) && s.cancel != nil {
		s.cancel()
	}
}

// Dispose releases any run-scoped resources and marks the search
// permanently DISPOSED. It is idempotent, and fails only when called while
// the search is mid-TERMINATING.
func (s *Search[S, D]) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusDisposed {
		return nil
	}
	if s.status == StatusTerminating {
		return fmt.Errorf("%w: Dispose called while TERMINATING", ErrSearch)
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.status = StatusDisposed
	return nil
}

// AddStopCriterion registers c. It is rejected with
// ErrIncompatibleStopCriterion if c requires current-solution semantics
// this search's algorithm does not provide.
func (s *Search[S, D]) AddStopCriterion(c StopCriterion) (StopCriterionHandle, error) {
	if lc, ok := c.(LocalSearchOnlyCriterion); ok && lc.RequiresCurrentSolution() && !s.SupportsCurrentSolution() {
		return StopCriterionHandle{}, fmt.Errorf("%w: criterion requires current-solution semantics", ErrIncompatibleStopCriterion)
	}
	id := uuid.New()
	s.mu.Lock()
	s.stopCriteria = append(s.stopCriteria, stopCriterionEntry{id: id, criterion: c})
	s.mu.Unlock()
	return StopCriterionHandle{id: id}, nil
}

// RemoveStopCriterion unregisters the criterion identified by h.
func (s *Search[S, D]) RemoveStopCriterion(h StopCriterionHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.stopCriteria {
		if e.id == h.id {
			s.stopCriteria = append(s.stopCriteria[:i], s.stopCriteria[i+1:]...)
			return
		}
	}
}

// AddListener registers l. It is rejected with ErrIncompatibleListener if
// l requires current-solution callbacks this search's algorithm does not
// provide.
func (s *Search[S, D]) AddListener(l Listener[S, D]) (ListenerID, error) {
	if l.RequiresCurrentSolution() && !s.SupportsCurrentSolution() {
		return ListenerID{}, fmt.Errorf("%w: listener requires current-solution callbacks", ErrIncompatibleListener)
	}
	id := NewListenerID()
	s.mu.Lock()
	s.listeners[uuid.UUID(id)] = l
	s.listenerOrder = append(s.listenerOrder, uuid.UUID(id))
	s.mu.Unlock()
	return id, nil
}

// RemoveListener unregisters the listener identified by id.
func (s *Search[S, D]) RemoveListener(id ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, uuid.UUID(id))
	for i, oid := range s.listenerOrder {
		if oid == uuid.UUID(id) {
			s.listenerOrder = append(s.listenerOrder[:i], s.listenerOrder[i+1:]...)
			break
		}
	}
}

func (s *Search[S, D]) listenerSnapshot() []Listener[S, D] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Listener[S, D], 0, len(s.listenerOrder))
	for _, id := range s.listenerOrder {
		out = append(out, s.listeners[id])
	}
	return out
}

func (s *Search[S, D]) fireStarted() {
	for _, l := range s.listenerSnapshot() {
		l.Started(s)
	}
}
func (s *Search[S, D]) fireStopped() {
	for _, l := range s.listenerSnapshot() {
		l.Stopped(s)
	}
}
func (s *Search[S, D]) fireNewBest(sol S, eval Evaluation, valid Validation) {
	for _, l := range s.listenerSnapshot() {
		l.NewBestSolution(s, sol, eval, valid)
	}
}
func (s *Search[S, D]) fireNewCurrent(sol S) {
	for _, l := range s.listenerSnapshot() {
		l.NewCurrentSolution(s, sol)
	}
}
func (s *Search[S, D]) fireStepCompleted() {
	for _, l := range s.listenerSnapshot() {
		l.StepCompleted(s, s.step)
	}
}
func (s *Search[S, D]) fireStatusChanged(from, to Status) {
	for _, l := range s.listenerSnapshot() {
		l.StatusChanged(s, from, to)
	}
}

func (s *Search[S, D]) transition(to Status) {
	s.mu.Lock()
	from := s.status
	s.status = to
	s.mu.Unlock()
	s.logger.Debugw("status changed", "search", s.name, "from", from.String(), "to", to.String())
	s.fireStatusChanged(from, to)
}

// Start runs the search until a stop criterion fires, the algorithm
// terminates naturally, ctx is cancelled, Stop is called, or an error
// occurs. It blocks the caller for the duration of the run.
func (s *Search[S, D]) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.status != StatusIdle {
		status := s.status
		s.mu.Unlock()
		return fmt.Errorf("%w: Start called while status is %s", ErrSearch, status)
	}
	s.mu.Unlock()

	s.transition(StatusInitializing)

	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	if err := s.initializeRun(); err != nil {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		s.transition(StatusIdle)
		return err
	}

	if runCtx.Err() != nil {
		// Stop() was called while still INITIALIZING.
		s.transition(StatusTerminating)
		s.fireStopped()
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		s.transition(StatusIdle)
		return nil
	}

	s.transition(StatusRunning)
	s.fireStarted()

	runErr := s.runLoop(runCtx)

	s.transition(StatusTerminating)
	s.fireStopped()
	s.mu.Lock()
	s.cancel = nil
	s.mu.Unlock()
	s.transition(StatusIdle)

	if runErr != nil {
		s.logger.Warnw("search run ended with an error", "search", s.name, "error", runErr)
	}
	return runErr
}

func (s *Search[S, D]) initializeRun() error {
	var initial S
	if s.hasInitial {
		initial = s.initialSolution.Copy()
	} else {
		initial = s.problem.CreateRandomSolution(s.rng)
	}
	eval := s.problem.Evaluate(initial)
	valid := s.problem.Validate(initial)

	s.current = initial
	s.currentEval = eval
	s.currentValid = valid
	s.hasCurrent = true
	s.step = 0
	s.lastImprovementStep = 0
	s.runStart = s.clock.Now()
	s.cache.Clear()

	if s.algorithm.SupportsCurrentSolution() {
		s.ConsiderForBestEver(initial, eval, valid)
	}
	return nil
}

func (s *Search[S, D]) runLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		if c, stop := s.pollStopCriteria(); stop {
			s.logger.Infow("stop criterion triggered", "search", s.name, "criterion", fmt.Sprintf("%T", c))
			return nil
		}

		cont, err := s.algorithm.Step(ctx, s)
		if err != nil {
			return err
		}
		s.step++
		s.fireStepCompleted()
		if !cont {
			return nil
		}
	}
}

func (s *Search[S, D]) pollStopCriteria() (StopCriterion, bool) {
	s.mu.Lock()
	entries := make([]stopCriterionEntry, len(s.stopCriteria))
	copy(entries, s.stopCriteria)
	s.mu.Unlock()
	for _, e := range entries {
		if e.criterion.ShouldStop(s) {
			return e.criterion, true
		}
	}
	return nil, false
}
