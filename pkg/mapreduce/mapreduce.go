package mapreduce

import (
	"context"
	"log/slog"
)

// Frequencies maps a normalized word to its number of occurrences.
// Absent words have zero occurrences; stored counts are always >= 1.
type Frequencies map[string]int

// Total returns the sum of all counts.
func (f Frequencies) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// Map generates a word frequency map for a single chunk of tokens.
func Map(tokens []string) Frequencies {
	counts := make(Frequencies, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		counts[t]++
	}
	return counts
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []Frequencies) Frequencies {
	finalResults := make(Frequencies)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}

// Partition splits items into n contiguous chunks of equal size, the last one
// absorbing the remainder. When there are fewer items than n every chunk holds
// a single item instead of producing empty chunks.
func Partition[T any](items []T, n int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	size := len(items) / n
	if size == 0 {
		size = 1
	}

	chunks := make([][]T, 0, n)
	for start := 0; start < len(items); {
		end := start + size
		if len(chunks) == n-1 || end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
		start = end
	}
	return chunks
}

// Aggregate counts tokens on a bounded pool. Every chunk is counted into a
// private map and the partial maps are merged by the caller's goroutine once
// all workers have returned, so the result is never written concurrently.
func Aggregate(ctx context.Context, logger *slog.Logger, tokens []string, workers int) (Frequencies, error) {
	chunks := Partition(tokens, workers)
	partials, err := Parallel(ctx, logger, "count", workers, chunks, func(_ context.Context, chunk []string) (Frequencies, error) {
		return Map(chunk), nil
	})
	if err != nil {
		return nil, err
	}
	return Reduce(partials), nil
}
