package subset

import (
	"fmt"

	"github.com/go-james/james/pkg/search"
)

// valueData is a minimal UniverseData implementation used throughout this
// package's tests: a fixed id universe plus a per-id scalar value.
type valueData struct {
	ids    []int
	values map[int]float64
}

func (d valueData) IDs() []int { return d.ids }

func (d valueData) value(id int) float64 { return d.values[id] }

// sumObjective maximizes the sum of selected ids' values. It supports
// exact delta evaluation: a move's effect on the sum is just the values of
// the ids it adds minus the values of the ids it removes.
type sumObjective struct{}

func (sumObjective) Evaluate(s *Solution, data valueData) search.Evaluation {
	total := 0.0
	for _, id := range s.Selected() {
		total += data.value(id)
	}
	return search.NewSimpleEvaluation(total)
}

func (sumObjective) EvaluateDelta(m search.Move[*Solution], sCur *Solution, evalCur search.Evaluation, data valueData) (search.Evaluation, error) {
	sm, ok := m.(*Move)
	if !ok {
		return nil, fmt.Errorf("%w: sumObjective only supports *subset.Move", search.ErrIncompatibleDelta)
	}
	delta := 0.0
	for _, id := range sm.Added() {
		delta += data.value(id)
	}
	for _, id := range sm.Removed() {
		delta -= data.value(id)
	}
	return search.NewSimpleEvaluation(evalCur.Value() + delta), nil
}

func (sumObjective) IsMinimizing() bool { return false }

var _ search.Objective[*Solution, valueData] = sumObjective{}

func newValueData(ids []int, values []float64) valueData {
	m := make(map[int]float64, len(ids))
	for i, id := range ids {
		m[id] = values[i]
	}
	return valueData{ids: ids, values: m}
}
