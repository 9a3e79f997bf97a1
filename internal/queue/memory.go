// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package queue

import (
	"context"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

// MemoryStore keeps the queue in memory. LoadErr and PersistErr, when set,
// are returned instead of touching the topics.
type MemoryStore struct {
	Topics     []types.Topic
	LoadErr    error
	PersistErr error

	// Persists counts successful Persist calls.
	Persists int
}

// NewMemoryStore returns a MemoryStore holding a copy of topics.
func NewMemoryStore(topics ...types.Topic) *MemoryStore {
	return &MemoryStore{Topics: append([]types.Topic{}, topics...)}
}

func (m *MemoryStore) Load(_ context.Context) ([]types.Topic, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]types.Topic{}, m.Topics...), nil
}

func (m *MemoryStore) Persist(_ context.Context, topics []types.Topic) error {
	if m.PersistErr != nil {
		return m.PersistErr
	}
	m.Topics = append([]types.Topic{}, topics...)
	m.Persists++
	return nil
}
