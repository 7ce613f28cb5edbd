package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeTabuMemoryForbidsInverseOfAppliedMove(t *testing.T) {
	memory := NewAttributeTabuMemory[*counterSolution](2)
	applied := incrementMove{delta: 1}
	sol := &counterSolution{v: 5}

	memory.Register(applied, sol)

	assert.True(t, memory.IsTabu(incrementMove{delta: -1}, sol), "the inverse of the applied move should be tabu")
	assert.False(t, memory.IsTabu(applied, sol), "the applied move itself need not be tabu")
}

func TestAttributeTabuMemoryExpiresAfterTenure(t *testing.T) {
	memory := NewAttributeTabuMemory[*counterSolution](2)
	sol := &counterSolution{v: 0}

	memory.Register(incrementMove{delta: 1}, sol) // tabu: -1
	memory.Register(incrementMove{delta: 2}, sol) // tabu: -2 (list now [-1,-2], full)
	memory.Register(incrementMove{delta: 3}, sol) // tabu: -3 (evicts -1)

	assert.False(t, memory.IsTabu(incrementMove{delta: -1}, sol), "entries beyond tenure should expire")
	assert.True(t, memory.IsTabu(incrementMove{delta: -2}, sol))
	assert.True(t, memory.IsTabu(incrementMove{delta: -3}, sol))
}

func TestAttributeTabuMemoryClear(t *testing.T) {
	memory := NewAttributeTabuMemory[*counterSolution](5)
	sol := &counterSolution{v: 0}
	memory.Register(incrementMove{delta: 1}, sol)
	memory.Clear()
	assert.False(t, memory.IsTabu(incrementMove{delta: -1}, sol))
}
