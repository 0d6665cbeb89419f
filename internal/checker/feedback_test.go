package checker_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"loanchecker/internal/checker"
	"loanchecker/pkg/domain"
	"loanchecker/pkg/serrors"
	"loanchecker/pkg/storage"
	"loanchecker/pkg/storage/memory"
)

func TestChecker_SubmitFeedback(t *testing.T) {
	m, c := newTestChecker(t)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m.storage.EXPECT().StoreFeedback(gomock.Any(), domain.Feedback{Name: "Ana", Rating: 5, Comments: "great"}).
		DoAndReturn(func(_ context.Context, f domain.Feedback) (*domain.Feedback, error) {
			f.ID = domain.FeedbackID(uuid.New())
			f.CreatedAt = created

			return &f, nil
		})

	fb, err := c.SubmitFeedback(context.Background(), domain.FeedbackInput{Name: "  Ana ", Rating: 5, Comments: " great\n"})
	require.NoError(t, err)
	require.Equal(t, "Ana", fb.Name)
	require.Equal(t, created, fb.CreatedAt)
}

func TestChecker_SubmitFeedback_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input domain.FeedbackInput
	}{
		{"rating too low", domain.FeedbackInput{Rating: 0}},
		{"rating too high", domain.FeedbackInput{Rating: 6}},
		{"long name", domain.FeedbackInput{Rating: 3, Name: strings.Repeat("a", 101)}},
		{"long comments", domain.FeedbackInput{Rating: 3, Comments: strings.Repeat("a", 2001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestChecker(t)

			_, err := c.SubmitFeedback(context.Background(), tt.input)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestChecker_SubmitFeedback_StorageError(t *testing.T) {
	m, c := newTestChecker(t)

	m.storage.EXPECT().StoreFeedback(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := c.SubmitFeedback(context.Background(), domain.FeedbackInput{Rating: 4})
	require.ErrorContains(t, err, "db down")
}

func TestChecker_ListFeedback_Limits(t *testing.T) {
	tests := []struct {
		name     string
		limit    uint
		expected uint
	}{
		{"default", 0, checker.DefaultFeedbackLimit},
		{"explicit", 5, 5},
		{"capped", 1000, checker.MaxFeedbackLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, c := newTestChecker(t)

			m.storage.EXPECT().ListFeedback(gomock.Any(), storage.FeedbackCursor{}, tt.expected).Return(storage.FeedbackPage{}, nil)

			items, next, err := c.ListFeedback(context.Background(), "", tt.limit)
			require.NoError(t, err)
			require.Empty(t, items)
			require.Empty(t, next)
		})
	}
}

func TestChecker_ListFeedback_Cursor(t *testing.T) {
	m, c := newTestChecker(t)

	id := domain.FeedbackID(uuid.MustParse("7f1b8f0e-3c55-4a49-9a55-1b2f7f0f6a11"))
	cursor := storage.FeedbackCursor{CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC), ID: id}
	m.storage.EXPECT().ListFeedback(gomock.Any(), cursor, uint(2)).
		Return(storage.FeedbackPage{NextCursor: &cursor}, nil)

	encoded := "2024-05-01T10:00:00.123456789Z_7f1b8f0e-3c55-4a49-9a55-1b2f7f0f6a11"
	_, next, err := c.ListFeedback(context.Background(), encoded, 2)
	require.NoError(t, err)
	require.Equal(t, encoded, next)
}

func TestChecker_ListFeedback_InvalidCursor(t *testing.T) {
	_, c := newTestChecker(t)

	for _, cursor := range []string{
		"yesterday",
		"2024-05-01T10:00:00Z",
		"yesterday_7f1b8f0e-3c55-4a49-9a55-1b2f7f0f6a11",
		"2024-05-01T10:00:00Z_not-a-uuid",
	} {
		_, _, err := c.ListFeedback(context.Background(), cursor, 10)
		require.ErrorIs(t, err, serrors.ErrBadRequest, cursor)
		require.ErrorContains(t, err, "invalid cursor", cursor)
	}
}

func TestChecker_Feedback_PagesThroughMemory(t *testing.T) {
	c := checker.New(nil, memory.New(), nil, checker.Options{})
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := c.SubmitFeedback(ctx, domain.FeedbackInput{Rating: i})
		require.NoError(t, err)
	}

	var (
		seen   []int
		cursor string
	)
	for {
		items, next, err := c.ListFeedback(ctx, cursor, 2)
		require.NoError(t, err)
		for _, it := range items {
			seen = append(seen, it.Rating)
		}
		if next == "" {
			break
		}
		cursor = next
	}

	// submissions may share a timestamp, none may be skipped or repeated
	require.ElementsMatch(t, []int{5, 4, 3, 2, 1}, seen)
}
