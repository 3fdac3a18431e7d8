package board

// JobStatus is the lifecycle status of a job posting. The wire values are
// part of the public contract and must match exactly.
type JobStatus string

const (
	JobStatusDraft   JobStatus = "draft"
	JobStatusActive  JobStatus = "active"
	JobStatusPaused  JobStatus = "paused"
	JobStatusExpired JobStatus = "expired"
	JobStatusClosed  JobStatus = "closed"
)

// IsValid checks if the status is one of the predefined values
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusExpired, JobStatusClosed:
		return true
	default:
		return false
	}
}

// JobStatuses returns all job statuses in lifecycle order
func JobStatuses() []JobStatus {
	return []JobStatus{
		JobStatusDraft,
		JobStatusActive,
		JobStatusPaused,
		JobStatusExpired,
		JobStatusClosed,
	}
}

// ParseJobStatus safely parses a string into a JobStatus
func ParseJobStatus(s string) (JobStatus, bool) {
	status := JobStatus(s)
	return status, status.IsValid()
}

// ApplicationStatus is the review status of a submitted application.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewing   ApplicationStatus = "reviewing"
	ApplicationStatusInterviewed ApplicationStatus = "interviewed"
	ApplicationStatusHired       ApplicationStatus = "hired"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// IsValid checks if the status is one of the predefined values
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusInterviewed,
		ApplicationStatusHired, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// ApplicationStatuses returns all application statuses
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusPending,
		ApplicationStatusReviewing,
		ApplicationStatusInterviewed,
		ApplicationStatusHired,
		ApplicationStatusRejected,
	}
}

// ParseApplicationStatus safely parses a string into an ApplicationStatus
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	status := ApplicationStatus(s)
	return status, status.IsValid()
}
