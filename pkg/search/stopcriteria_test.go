package search

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

type fakeRunInfo struct {
	steps                 int
	elapsed               time.Duration
	stepsSinceImprovement int
	bestValue             float64
	hasBest               bool
	supportsCurrent       bool
}

func (f fakeRunInfo) Steps() int                               { return f.steps }
func (f fakeRunInfo) TimeSinceStarted() time.Duration          { return f.elapsed }
func (f fakeRunInfo) StepsSinceLastImprovement() int           { return f.stepsSinceImprovement }
func (f fakeRunInfo) BestEverEvaluationValue() (float64, bool) { return f.bestValue, f.hasBest }
func (f fakeRunInfo) SupportsCurrentSolution() bool            { return f.supportsCurrent }

func TestMaxRuntimeStopsOnceLimitReached(t *testing.T) {
	c := MaxRuntime(10 * time.Second)
	assert.False(t, c.ShouldStop(fakeRunInfo{elapsed: 9 * time.Second}))
	assert.True(t, c.ShouldStop(fakeRunInfo{elapsed: 10 * time.Second}))
}

func TestMaxStepsStopsAtLimit(t *testing.T) {
	c := MaxSteps(5)
	assert.False(t, c.ShouldStop(fakeRunInfo{steps: 4}))
	assert.True(t, c.ShouldStop(fakeRunInfo{steps: 5}))
}

func TestMaxStepsWithoutImprovementRequiresCurrentSolution(t *testing.T) {
	c := MaxStepsWithoutImprovement(3)
	lc, ok := c.(LocalSearchOnlyCriterion)
	assert.True(t, ok)
	assert.True(t, lc.RequiresCurrentSolution())
	assert.True(t, c.ShouldStop(fakeRunInfo{stepsSinceImprovement: 3}))
}

func TestTargetEvaluationMaximizing(t *testing.T) {
	c := TargetEvaluation(10, false)
	assert.False(t, c.ShouldStop(fakeRunInfo{bestValue: 9, hasBest: true}))
	assert.True(t, c.ShouldStop(fakeRunInfo{bestValue: 10, hasBest: true}))
	assert.False(t, c.ShouldStop(fakeRunInfo{hasBest: false}))
}

func TestTargetEvaluationMinimizing(t *testing.T) {
	c := TargetEvaluation(5, true)
	assert.False(t, c.ShouldStop(fakeRunInfo{bestValue: 6, hasBest: true}))
	assert.True(t, c.ShouldStop(fakeRunInfo{bestValue: 5, hasBest: true}))
}

func TestMockClockDrivesMaxRuntime(t *testing.T) {
	mock := clock.NewMock()
	start := mock.Now()
	mock.Add(5 * time.Second)
	elapsed := mock.Now().Sub(start)
	c := MaxRuntime(5 * time.Second)
	assert.True(t, c.ShouldStop(fakeRunInfo{elapsed: elapsed}))
}
