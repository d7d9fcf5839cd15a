package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalstead(t *testing.T) {
	r := NewResult()
	r.TotalOperators = 10
	r.TotalOperands = 8
	r.UniqueOperators["mov"] = struct{}{}
	r.UniqueOperators["ldr"] = struct{}{}
	r.UniqueOperands["r0"] = struct{}{}
	r.UniqueOperands["r1"] = struct{}{}
	r.UniqueOperands["1"] = struct{}{}

	m := Halstead(r)
	assert.Equal(t, 18, m.Length)
	assert.Equal(t, 5, m.Vocabulary)
	assert.InDelta(t, float64(18)*math.Log2(5), m.Volume, 1e-9)
	assert.InDelta(t, (2.0/2.0)*(8.0/3.0), m.Difficulty, 1e-9)
	assert.InDelta(t, m.Difficulty*m.Volume, m.Effort, 1e-9)
}

func TestHalsteadEmptyProducesNaN(t *testing.T) {
	r := NewResult()
	m := Halstead(r)
	assert.True(t, math.IsNaN(m.Volume) || math.IsInf(m.Volume, 0) || m.Volume == 0)
	assert.True(t, math.IsNaN(m.Difficulty))
}
