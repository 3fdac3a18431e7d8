package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobfinder/jobfinder/internal/board"
)

func TestJobStatus_IsValid(t *testing.T) {
	for _, status := range board.JobStatuses() {
		assert.True(t, status.IsValid(), "expected %q to be valid", status)
	}

	invalid := []board.JobStatus{"", "archived", "ACTIVE", "Draft", "open"}
	for _, status := range invalid {
		assert.False(t, status.IsValid(), "expected %q to be invalid", status)
	}
}

func TestParseJobStatus(t *testing.T) {
	status, ok := board.ParseJobStatus("active")
	assert.True(t, ok)
	assert.Equal(t, board.JobStatusActive, status)

	_, ok = board.ParseJobStatus("archived")
	assert.False(t, ok)

	_, ok = board.ParseJobStatus("")
	assert.False(t, ok)
}

func TestApplicationStatus_IsValid(t *testing.T) {
	for _, status := range board.ApplicationStatuses() {
		assert.True(t, status.IsValid(), "expected %q to be valid", status)
	}

	invalid := []board.ApplicationStatus{"", "accepted", "PENDING", "Hired"}
	for _, status := range invalid {
		assert.False(t, status.IsValid(), "expected %q to be invalid", status)
	}
}

func TestParseApplicationStatus(t *testing.T) {
	status, ok := board.ParseApplicationStatus("interviewed")
	assert.True(t, ok)
	assert.Equal(t, board.ApplicationStatusInterviewed, status)

	_, ok = board.ParseApplicationStatus("accepted")
	assert.False(t, ok)
}

func TestJob_Active(t *testing.T) {
	assert.True(t, (&board.Job{Status: board.JobStatusActive}).Active())

	for _, status := range []board.JobStatus{board.JobStatusDraft, board.JobStatusPaused, board.JobStatusExpired, board.JobStatusClosed} {
		assert.False(t, (&board.Job{Status: status}).Active(), "status %q should not be active", status)
	}
}

func TestEnsureStatus(t *testing.T) {
	job := &board.Job{}
	job.EnsureStatus()
	assert.Equal(t, board.JobStatusDraft, job.Status)

	job.Status = board.JobStatusClosed
	job.EnsureStatus()
	assert.Equal(t, board.JobStatusClosed, job.Status)

	app := &board.Application{}
	app.EnsureStatus()
	assert.Equal(t, board.ApplicationStatusPending, app.Status)

	app.Status = board.ApplicationStatusHired
	app.EnsureStatus()
	assert.Equal(t, board.ApplicationStatusHired, app.Status)
}
