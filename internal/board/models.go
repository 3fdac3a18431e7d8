package board

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Salary describes the advertised compensation range.
type Salary struct {
	Min      int    `bun:"min" json:"min,omitempty"`
	Max      int    `bun:"max" json:"max,omitempty"`
	Currency string `bun:"currency" json:"currency,omitempty"`
	Period   string `bun:"period" json:"period,omitempty"`
}

// Job is a job posting. Status is the single source of truth for its
// lifecycle; the legacy `active` flag is derived, never stored.
type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:job"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Company       string     `bun:"company,notnull" json:"company,omitempty"`
	Location      string     `bun:"location" json:"location,omitempty"`
	Type          string     `bun:"type" json:"type,omitempty"`
	Category      string     `bun:"category" json:"category,omitempty"`
	Salary        Salary     `bun:"embed:salary_" json:"salary"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Requirements  []string   `bun:"requirements" json:"requirements,omitempty"`
	Benefits      []string   `bun:"benefits" json:"benefits,omitempty"`
	Featured      bool       `bun:"featured" json:"featured"`
	Status        JobStatus  `bun:"status,notnull" json:"status,omitempty"`
	PostedDate    *time.Time `bun:"posted_date,nullzero" json:"posted_date,omitempty"`
	Views         int64      `bun:"views" json:"views"`
	Applicants    int64      `bun:"applicants" json:"applicants"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Active reports whether the posting is publicly listed. Derived from
// Status so the two representations can never disagree.
func (j *Job) Active() bool {
	return j.Status == JobStatusActive
}

// EnsureStatus backfills the zero value with the initial status.
func (j *Job) EnsureStatus() {
	if j.Status == "" {
		j.Status = JobStatusDraft
	}
}

// Application is a public submission against a job. JobID is a weak
// reference: deleting the job does not cascade.
type Application struct {
	bun.BaseModel `bun:"table:applications,alias:app"`
	ID            uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	JobID         uuid.UUID         `bun:"job_id,notnull,type:uuid" json:"job_id,omitempty"`
	FirstName     string            `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string            `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email         string            `bun:"email,notnull" json:"email,omitempty"`
	Phone         string            `bun:"phone" json:"phone,omitempty"`
	ResumeURL     string            `bun:"resume_url" json:"resume_url,omitempty"`
	Status        ApplicationStatus `bun:"status,notnull" json:"status,omitempty"`
	CreatedAt     *time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureStatus backfills the zero value with the initial status.
func (a *Application) EnsureStatus() {
	if a.Status == "" {
		a.Status = ApplicationStatusPending
	}
}

// Subscriber is a job-alert subscription. Email is unique at the data
// layer; re-subscribing an inactive record reactivates it in place.
type Subscriber struct {
	bun.BaseModel `bun:"table:subscribers,alias:sub"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	Active        bool       `bun:"active" json:"active"`
	SubscribeDate *time.Time `bun:"subscribe_date,nullzero" json:"subscribe_date,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
