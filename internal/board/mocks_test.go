package board_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jobfinder/jobfinder/internal/board"
)

// MockJobStatusStore implements board.JobStatusStore
type MockJobStatusStore struct {
	mock.Mock
}

func (m *MockJobStatusStore) UpdateStatus(ctx context.Context, id uuid.UUID, status board.JobStatus, updatedAt time.Time) (*board.Job, error) {
	args := m.Called(ctx, id, status, updatedAt)
	if job, ok := args.Get(0).(*board.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockApplicationStatusStore implements board.ApplicationStatusStore
type MockApplicationStatusStore struct {
	mock.Mock
}

func (m *MockApplicationStatusStore) UpdateStatus(ctx context.Context, id uuid.UUID, status board.ApplicationStatus, updatedAt time.Time) (*board.Application, error) {
	args := m.Called(ctx, id, status, updatedAt)
	if app, ok := args.Get(0).(*board.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockActivitySink implements board.ActivitySink
type MockActivitySink struct {
	mock.Mock
}

func (m *MockActivitySink) Record(ctx context.Context, event board.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
