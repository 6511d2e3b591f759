package pipeline

import "iter"

const DefaultBatchSize = 25

// Batch groups lines into slices of size and hands each to emit. The final
// partial batch is flushed when lines ends; an empty batch is never emitted.
// It returns the number of lines seen.
func Batch(lines iter.Seq[string], size int, emit func([]string)) int {
	if size <= 0 {
		size = DefaultBatchSize
	}

	count := 0
	batch := make([]string, 0, size)
	for line := range lines {
		batch = append(batch, line)
		count++
		if len(batch) == size {
			emit(batch)
			batch = make([]string, 0, size)
		}
	}
	if len(batch) > 0 {
		emit(batch)
	}
	return count
}
