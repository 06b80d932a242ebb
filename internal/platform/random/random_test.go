package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studybuddy/internal/platform/random"
)

func TestSeededIsReproducible(t *testing.T) {
	t.Parallel()
	a, b := random.NewSeeded(7), random.NewSeeded(7)
	for range 50 {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(10), b.IntN(10))
	}
}

func TestPick(t *testing.T) {
	t.Parallel()
	src := &random.Scripted{Ints: []int{2, 0, 5}}
	items := []string{"a", "b", "c"}
	assert.Equal(t, "c", random.Pick[string](src, items))
	assert.Equal(t, "a", random.Pick[string](src, items))
	assert.Equal(t, "c", random.Pick[string](src, items))
	assert.Equal(t, "", random.Pick[string](src, nil))
}

func TestScriptedCycles(t *testing.T) {
	t.Parallel()
	src := &random.Scripted{Floats: []float64{0.1, 0.9}}
	assert.Equal(t, []float64{0.1, 0.9, 0.1}, []float64{src.Float64(), src.Float64(), src.Float64()})
	assert.Zero(t, (&random.Scripted{}).IntN(4))
}
