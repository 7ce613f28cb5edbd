package subset

import (
	"testing"

	"github.com/go-james/james/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestValidationPassedRequiresSizeAndInner(t *testing.T) {
	v := NewValidation(true, search.NewSimpleValidation(true))
	assert.True(t, v.Passed())

	v = NewValidation(false, search.NewSimpleValidation(true))
	assert.False(t, v.Passed())

	v = NewValidation(true, search.NewSimpleValidation(false))
	assert.False(t, v.Passed())
}

func TestValidationPassedCheckedIgnoresSize(t *testing.T) {
	v := NewValidation(false, search.NewSimpleValidation(true))
	assert.False(t, v.Passed())
	assert.True(t, v.PassedChecked(false))
}

func TestValidationNilInnerVacuouslyPasses(t *testing.T) {
	v := NewValidation(true, nil)
	assert.True(t, v.Passed())
	assert.Nil(t, v.Inner())
}
