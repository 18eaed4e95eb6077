package gateway

import (
	"context"
	"fmt"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/tokenizer"
)

// Query validates lookup words before they reach the store.
type Query struct {
	store *Store
}

func NewQuery(store *Store) *Query {
	return &Query{store: store}
}

// Validate rejects words without a single ASCII letter.
func (q *Query) Validate(word string) error {
	if !tokenizer.HasLetter(word) {
		return fmt.Errorf("%w: a requested word must contain at least one letter", models.ErrBadRequest)
	}
	return nil
}

// Count validates word and returns its cumulative count.
func (q *Query) Count(ctx context.Context, word string) (int, error) {
	if err := q.Validate(word); err != nil {
		return 0, err
	}
	return q.store.Lookup(ctx, word)
}
