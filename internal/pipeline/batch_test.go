package pipeline

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchReconstructsInput(t *testing.T) {
	input := make([]string, 57)
	for i := range input {
		input[i] = fmt.Sprintf("line %d", i)
	}

	for size := 1; size <= 60; size++ {
		var got []string
		batches := 0
		count := Batch(slices.Values(input), size, func(batch []string) {
			require.NotEmpty(t, batch, "size %d", size)
			require.LessOrEqual(t, len(batch), size)
			got = append(got, batch...)
			batches++
		})

		assert.Equal(t, len(input), count, "size %d", size)
		assert.Equal(t, input, got, "size %d", size)
		assert.Equal(t, (len(input)+size-1)/size, batches, "size %d", size)
	}
}

func TestBatchFlushesPartialBatch(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e"}
	var sizes []int
	Batch(slices.Values(input), 2, func(batch []string) {
		sizes = append(sizes, len(batch))
	})
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestBatchEmptyInput(t *testing.T) {
	called := false
	n := Batch(slices.Values([]string(nil)), DefaultBatchSize, func([]string) { called = true })
	assert.Zero(t, n)
	assert.False(t, called)
}

func TestBatchDefaultSize(t *testing.T) {
	input := make([]string, 30)
	var sizes []int
	Batch(slices.Values(input), 0, func(batch []string) {
		sizes = append(sizes, len(batch))
	})
	assert.Equal(t, []int{25, 5}, sizes)
}
