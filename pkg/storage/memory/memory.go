// Package memory implements storage.Storage in process memory. Entries are
// lost on restart; it backs the service when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"loanchecker/pkg/domain"
	"loanchecker/pkg/storage"

	"github.com/google/uuid"
)

// Memory is a mutex guarded feedback list.
type Memory struct {
	mu       sync.RWMutex
	feedback []domain.Feedback
	now      func() time.Time
}

var _ storage.Storage = (*Memory)(nil)

// New creates an empty store.
func New() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) StoreFeedback(_ context.Context, feedback domain.Feedback) (*domain.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	feedback.ID = domain.FeedbackID(uuid.New())
	feedback.CreatedAt = m.now().UTC()
	m.feedback = append(m.feedback, feedback)

	return &feedback, nil
}

func (m *Memory) ListFeedback(_ context.Context, cursor storage.FeedbackCursor, limit uint) (storage.FeedbackPage, error) {
	m.mu.RLock()
	matching := make([]domain.Feedback, 0, len(m.feedback))
	for _, f := range m.feedback {
		if cursor.Admits(f) {
			matching = append(matching, f)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matching, func(i, j int) bool {
		if !matching[i].CreatedAt.Equal(matching[j].CreatedAt) {
			return matching[i].CreatedAt.After(matching[j].CreatedAt)
		}

		return matching[i].ID.Compare(matching[j].ID) > 0
	})

	var next *storage.FeedbackCursor
	if uint(len(matching)) > limit {
		matching = matching[:limit]
		if limit > 0 {
			last := storage.CursorOf(matching[len(matching)-1])
			next = &last
		}
	}

	return storage.FeedbackPage{Feedback: matching, NextCursor: next}, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
