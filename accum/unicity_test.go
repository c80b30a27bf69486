package accum_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GrGLeo/dataguard/accum"
)

func TestUnicityCountsDuplicatesAfterFirst(t *testing.T) {
	u := accum.NewUnicity()
	values := []int64{1, 2, 3, 2, 4, 1, 1}
	for _, v := range values {
		u.Observe(v)
	}
	// 2 appears twice (1 dup), 1 appears three times (2 dups) => 3 total.
	assert.Equal(t, int64(3), u.Violations())
	assert.Equal(t, int64(7), u.Total())
}

func TestUnicityConcurrentObserve(t *testing.T) {
	u := accum.NewUnicity()
	var wg sync.WaitGroup
	// Each of 100 distinct values observed twice concurrently => 100 dups.
	for i := 0; i < 100; i++ {
		v := int64(i)
		wg.Add(2)
		go func() { defer wg.Done(); u.Observe(v) }()
		go func() { defer wg.Done(); u.Observe(v) }()
	}
	wg.Wait()
	assert.Equal(t, int64(100), u.Violations())
	assert.Equal(t, int64(200), u.Total())
}

func TestUnicityStringValues(t *testing.T) {
	u := accum.NewUnicity()
	assert.False(t, u.Observe("a"))
	assert.False(t, u.Observe("b"))
	assert.True(t, u.Observe("a"))
	assert.Equal(t, int64(1), u.Violations())
}
