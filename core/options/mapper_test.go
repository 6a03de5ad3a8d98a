package options

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialVisitsAllInOrder(t *testing.T) {
	var visited []int
	err := Sequential(5, func(i int) error {
		visited = append(visited, i)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, visited)
}

func TestSequentialStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var visited []int
	err := Sequential(5, func(i int) error {
		visited = append(visited, i)
		if i == 2 {
			return boom
		}
		return nil
	})
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []int{0, 1, 2}, visited)
}

func TestParallelVisitsEveryIndexOnce(t *testing.T) {
	const n = 64
	var counts [n]int32
	err := Parallel(n, func(i int) error {
		atomic.AddInt32(&counts[i], 1)
		return nil
	})
	assert.NoError(t, err)
	for i, c := range counts {
		assert.EqualValues(t, 1, c, "index %d", i)
	}
}

func TestParallelReportsFailure(t *testing.T) {
	boom := errors.New("boom")
	var ran int32
	err := Parallel(16, func(i int) error {
		atomic.AddInt32(&ran, 1)
		if i == 7 {
			return boom
		}
		return nil
	})
	assert.True(t, errors.Is(err, boom))
	assert.EqualValues(t, 16, ran)
}

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	assert.True(t, opts.GFM)
	assert.True(t, opts.SmartyPants)
	assert.True(t, opts.PureLinks)
	assert.False(t, opts.Footnotes)
	assert.Equal(t, 1, opts.FootnoteOffset)
	assert.Nil(t, opts.Mapper)
}
