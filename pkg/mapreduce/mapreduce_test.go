package mapreduce

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		n     int
		sizes []int
	}{
		{"even split", []int{1, 2, 3, 4, 5, 6}, 3, []int{2, 2, 2}},
		{"last absorbs remainder", []int{1, 2, 3, 4, 5, 6, 7}, 3, []int{2, 2, 3}},
		{"fewer items than chunks", []int{1, 2}, 5, []int{1, 1}},
		{"single chunk", []int{1, 2, 3}, 1, []int{3}},
		{"zero chunks treated as one", []int{1, 2, 3}, 0, []int{3}},
		{"empty input", nil, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Partition(tt.items, tt.n)
			var sizes []int
			var flat []int
			for _, c := range chunks {
				sizes = append(sizes, len(c))
				flat = append(flat, c...)
			}
			if !reflect.DeepEqual(sizes, tt.sizes) {
				t.Errorf("Partition() sizes = %v, want %v", sizes, tt.sizes)
			}
			if len(tt.items) > 0 && !reflect.DeepEqual(flat, tt.items) {
				t.Errorf("Partition() lost order: %v", flat)
			}
		})
	}
}

func TestMap(t *testing.T) {
	got := Map([]string{"cat", "cat", "dog", ""})
	want := Frequencies{"cat": 2, "dog": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}
}

func TestReduce_Commutative(t *testing.T) {
	a := Frequencies{"cat": 1, "dog": 2}
	b := Frequencies{"cat": 3}
	c := Frequencies{"emu": 1}

	want := Frequencies{"cat": 4, "dog": 2, "emu": 1}
	orders := [][]Frequencies{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, order := range orders {
		if got := Reduce(order); !reflect.DeepEqual(got, want) {
			t.Errorf("Reduce(%v) = %v, want %v", order, got, want)
		}
	}
}

func TestAggregate(t *testing.T) {
	tokens := []string{"cat", "dog", "cat", "emu", "cat", "dog", "fox"}
	for _, workers := range []int{1, 2, 3, 7, 20} {
		got, err := Aggregate(context.Background(), nil, tokens, workers)
		if err != nil {
			t.Fatalf("Aggregate(workers=%d) error = %v", workers, err)
		}
		want := Frequencies{"cat": 3, "dog": 2, "emu": 1, "fox": 1}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Aggregate(workers=%d) = %v, want %v", workers, got, want)
		}
		if got.Total() != len(tokens) {
			t.Errorf("Total() = %d, want %d", got.Total(), len(tokens))
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	got, err := Aggregate(context.Background(), nil, nil, 4)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
}

func TestParallel_SkipsFailedChunks(t *testing.T) {
	inputs := []int{1, 2, 3, 4, 5}
	out, err := Parallel(context.Background(), nil, "test", 2, inputs, func(_ context.Context, n int) (int, error) {
		if n == 3 {
			return 0, errors.New("boom")
		}
		return n * 10, nil
	})
	if err != nil {
		t.Fatalf("Parallel() error = %v", err)
	}
	want := []int{10, 20, 40, 50}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Parallel() = %v, want %v", out, want)
	}
}

func TestParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	_, err := Parallel(ctx, nil, "test", 3, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return n, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parallel() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("fn called %d times after cancellation, want 0", calls)
	}
}
