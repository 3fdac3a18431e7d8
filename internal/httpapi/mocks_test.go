package httpapi_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jobfinder/jobfinder/internal/board"
)

// MockJobs implements board.Jobs (and board.JobStatusStore).
type MockJobs struct {
	mock.Mock
}

func (m *MockJobs) Create(ctx context.Context, record *board.Job) (*board.Job, error) {
	args := m.Called(ctx, record)
	if job, ok := args.Get(0).(*board.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobs) Update(ctx context.Context, record *board.Job) (*board.Job, error) {
	args := m.Called(ctx, record)
	if job, ok := args.Get(0).(*board.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobs) GetByID(ctx context.Context, id uuid.UUID) (*board.Job, error) {
	args := m.Called(ctx, id)
	if job, ok := args.Get(0).(*board.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobs) List(ctx context.Context, filter board.JobFilter) ([]*board.Job, int, error) {
	args := m.Called(ctx, filter)
	var records []*board.Job
	if v, ok := args.Get(0).([]*board.Job); ok {
		records = v
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockJobs) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobs) UpdateStatus(ctx context.Context, id uuid.UUID, status board.JobStatus, updatedAt time.Time) (*board.Job, error) {
	args := m.Called(ctx, id, status, updatedAt)
	if job, ok := args.Get(0).(*board.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobs) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobs) IncrementApplicants(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobs) CountByStatus(ctx context.Context) (map[board.JobStatus]int, error) {
	args := m.Called(ctx)
	var counts map[board.JobStatus]int
	if v, ok := args.Get(0).(map[board.JobStatus]int); ok {
		counts = v
	}
	return counts, args.Error(1)
}

// MockApplications implements board.Applications.
type MockApplications struct {
	mock.Mock
}

func (m *MockApplications) Create(ctx context.Context, record *board.Application) (*board.Application, error) {
	args := m.Called(ctx, record)
	if app, ok := args.Get(0).(*board.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplications) GetByID(ctx context.Context, id uuid.UUID) (*board.Application, error) {
	args := m.Called(ctx, id)
	if app, ok := args.Get(0).(*board.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplications) List(ctx context.Context, filter board.ApplicationFilter) ([]*board.Application, int, error) {
	args := m.Called(ctx, filter)
	var records []*board.Application
	if v, ok := args.Get(0).([]*board.Application); ok {
		records = v
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockApplications) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplications) UpdateStatus(ctx context.Context, id uuid.UUID, status board.ApplicationStatus, updatedAt time.Time) (*board.Application, error) {
	args := m.Called(ctx, id, status, updatedAt)
	if app, ok := args.Get(0).(*board.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplications) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockSubscribers implements board.Subscribers.
type MockSubscribers struct {
	mock.Mock
}

func (m *MockSubscribers) Subscribe(ctx context.Context, email, phone string) (*board.Subscriber, error) {
	args := m.Called(ctx, email, phone)
	if sub, ok := args.Get(0).(*board.Subscriber); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubscribers) Unsubscribe(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockSubscribers) GetByEmail(ctx context.Context, email string) (*board.Subscriber, error) {
	args := m.Called(ctx, email)
	if sub, ok := args.Get(0).(*board.Subscriber); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubscribers) List(ctx context.Context, activeOnly bool, page, limit int) ([]*board.Subscriber, int, error) {
	args := m.Called(ctx, activeOnly, page, limit)
	var records []*board.Subscriber
	if v, ok := args.Get(0).([]*board.Subscriber); ok {
		records = v
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockSubscribers) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
