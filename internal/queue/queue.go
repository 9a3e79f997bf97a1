// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queue owns the ordered backlog of topics awaiting a draft.
// The first element is always the next topic; a run removes exactly that
// element and writes the rest back in order.
package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

// ErrEmpty signals that the queue has no topics. It is a normal terminal
// condition, not a failure.
var ErrEmpty = errors.New("no topics left")

// Store loads and persists the topic queue. Implementations return
// *types.StorageError for read, parse, and write failures.
type Store interface {
	Load(ctx context.Context) ([]types.Topic, error)
	Persist(ctx context.Context, topics []types.Topic) error
}

// PopFirst returns the first topic and the remaining queue. The input slice
// is not modified. It returns ErrEmpty when the queue is empty.
func PopFirst(topics []types.Topic) (types.Topic, []types.Topic, error) {
	if len(topics) == 0 {
		return "", nil, ErrEmpty
	}
	rest := make([]types.Topic, len(topics)-1)
	copy(rest, topics[1:])
	return topics[0], rest, nil
}

// Add appends topics to the back of the queue held by s. Blank topics are
// rejected before anything is written.
func Add(ctx context.Context, s Store, topics ...types.Topic) ([]types.Topic, error) {
	for i, t := range topics {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("topic %d is blank", i+1)
		}
	}
	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	updated := append(current, topics...)
	if err := s.Persist(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
