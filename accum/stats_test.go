package accum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GrGLeo/dataguard/accum"
)

func TestStatsSingleBatch(t *testing.T) {
	s := accum.NewStats()
	b := accum.NewBatch()
	for _, v := range []float64{10, 10, 10, 10, 1000} {
		b.Observe(v)
	}
	s.Merge(b)

	final := s.Finalize()
	assert.Equal(t, int64(5), final.Count)
	assert.InDelta(t, 208.0, final.Mean, 0.001)
	assert.InDelta(t, 396.0, final.StdDev, 0.001)
}

func TestStatsParallelCombineMatchesSequential(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	sequential := accum.NewBatch()
	for _, v := range values {
		sequential.Observe(v)
	}
	seqStats := accum.NewStats()
	seqStats.Merge(sequential)
	seqFinal := seqStats.Finalize()

	parallel := accum.NewStats()
	mid := len(values) / 2
	b1 := accum.NewBatch()
	for _, v := range values[:mid] {
		b1.Observe(v)
	}
	b2 := accum.NewBatch()
	for _, v := range values[mid:] {
		b2.Observe(v)
	}
	parallel.Merge(b1)
	parallel.Merge(b2)
	parFinal := parallel.Finalize()

	assert.InDelta(t, seqFinal.Mean, parFinal.Mean, 1e-9)
	assert.InDelta(t, seqFinal.StdDev, parFinal.StdDev, 1e-9)
}

func TestStatsCountBelowTwoYieldsZeroStdDev(t *testing.T) {
	s := accum.NewStats()
	b := accum.NewBatch()
	b.Observe(42)
	s.Merge(b)

	final := s.Finalize()
	assert.Equal(t, int64(1), final.Count)
	assert.Equal(t, 0.0, final.StdDev)
	assert.False(t, math.IsNaN(final.StdDev))
}

func TestStatsEmptyYieldsZero(t *testing.T) {
	s := accum.NewStats()
	final := s.Finalize()
	assert.Equal(t, int64(0), final.Count)
	assert.Equal(t, 0.0, final.StdDev)
}
