package board

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransitionMetadata captures extra context for a transition.
type TransitionMetadata struct {
	Reason   string
	Metadata map[string]any
}

// TransitionOption customizes a single transition.
type TransitionOption func(*transitionOptions)

// WithTransitionReason sets the human-readable reason for the transition.
func WithTransitionReason(reason string) TransitionOption {
	return func(opts *transitionOptions) {
		opts.metadata.Reason = reason
	}
}

// WithTransitionMetadata merges metadata into the transition context.
func WithTransitionMetadata(metadata map[string]any) TransitionOption {
	return func(opts *transitionOptions) {
		if len(metadata) == 0 {
			return
		}
		if opts.metadata.Metadata == nil {
			opts.metadata.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			opts.metadata.Metadata[k] = v
		}
	}
}

// StateMachineOption customizes state machine construction.
type StateMachineOption func(*stateMachineCore)

// WithStateMachineClock injects a custom clock (useful for tests).
func WithStateMachineClock(clock func() time.Time) StateMachineOption {
	return func(sm *stateMachineCore) {
		if clock != nil {
			sm.now = clock
		}
	}
}

// WithStateMachineActivitySink sets the ActivitySink used to publish
// lifecycle events.
func WithStateMachineActivitySink(sink ActivitySink) StateMachineOption {
	return func(sm *stateMachineCore) {
		sm.activitySink = normalizeActivitySink(sink)
	}
}

// WithStateMachineLogger overrides the logger used for sink failures.
func WithStateMachineLogger(logger Logger) StateMachineOption {
	return func(sm *stateMachineCore) {
		if logger != nil {
			sm.logger = logger
		}
	}
}

type stateMachineCore struct {
	now          func() time.Time
	activitySink ActivitySink
	logger       Logger
}

func newStateMachineCore(opts ...StateMachineOption) stateMachineCore {
	core := stateMachineCore{
		now:          time.Now,
		activitySink: noopActivitySink{},
		logger:       defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&core)
		}
	}
	return core
}

type transitionOptions struct {
	metadata TransitionMetadata
}

func buildTransitionOptions(opts ...TransitionOption) *transitionOptions {
	options := &transitionOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}

// Best effort: a sink failure is logged, never propagated.
func (sm *stateMachineCore) recordActivity(ctx context.Context, event ActivityEvent) {
	if event.Actor == (ActorRef{}) {
		event.Actor = ActorRef{Type: "system"}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = sm.now()
	}

	sink := normalizeActivitySink(sm.activitySink)
	if err := sink.Record(ctx, event); err != nil {
		sm.logger.Warn("state machine activity sink error: %v", err)
	}
}

func (sm *stateMachineCore) transitionMetadata(meta TransitionMetadata) map[string]any {
	if meta.Reason == "" && len(meta.Metadata) == 0 {
		return nil
	}

	result := map[string]any{}
	if meta.Reason != "" {
		result["reason"] = meta.Reason
	}
	for k, v := range meta.Metadata {
		result[k] = v
	}
	return result
}

// JobStatusStore persists a validated job status change as a partial update.
type JobStatusStore interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status JobStatus, updatedAt time.Time) (*Job, error)
}

// JobStateMachine governs job lifecycle transitions.
type JobStateMachine interface {
	Transition(ctx context.Context, actor ActorRef, job *Job, target JobStatus, opts ...TransitionOption) (*Job, error)
	CurrentStatus(job *Job) JobStatus
}

// NewJobStateMachine returns the default implementation backed by the
// provided store. Transitions within the closed status set are
// unrestricted: any status may move to any other. Only membership is
// validated.
func NewJobStateMachine(jobs JobStatusStore, opts ...StateMachineOption) JobStateMachine {
	return &jobStateMachine{
		stateMachineCore: newStateMachineCore(opts...),
		jobs:             jobs,
	}
}

type jobStateMachine struct {
	stateMachineCore
	jobs JobStatusStore
}

func (sm *jobStateMachine) Transition(ctx context.Context, actor ActorRef, job *Job, target JobStatus, opts ...TransitionOption) (*Job, error) {
	if job == nil {
		return nil, ErrInvalidStatus.WithMetadata(map[string]any{
			"target": target,
			"reason": "job is nil",
		})
	}

	job.EnsureStatus()
	from := job.Status

	if !target.IsValid() {
		return nil, ErrInvalidStatus.WithMetadata(map[string]any{
			"entity": "job",
			"status": string(target),
		})
	}

	if from == target {
		return job, nil
	}

	options := buildTransitionOptions(opts...)
	now := sm.now()

	updated, err := sm.jobs.UpdateStatus(ctx, job.ID, target, now)
	if err != nil {
		return nil, err
	}

	if updated != nil && updated.Status != "" {
		job.Status = updated.Status
		job.UpdatedAt = updated.UpdatedAt
	} else {
		job.Status = target
		job.UpdatedAt = &now
	}

	sm.recordActivity(ctx, ActivityEvent{
		EventType:  ActivityEventJobStatusChanged,
		Actor:      actor,
		EntityID:   job.ID.String(),
		FromStatus: string(from),
		ToStatus:   string(target),
		Metadata:   sm.transitionMetadata(options.metadata),
	})

	return job, nil
}

func (sm *jobStateMachine) CurrentStatus(job *Job) JobStatus {
	if job == nil {
		return ""
	}
	job.EnsureStatus()
	return job.Status
}

// ApplicationStatusStore persists a validated application status change.
type ApplicationStatusStore interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus, updatedAt time.Time) (*Application, error)
}

// ApplicationStateMachine governs application review transitions.
type ApplicationStateMachine interface {
	Transition(ctx context.Context, actor ActorRef, app *Application, target ApplicationStatus, opts ...TransitionOption) (*Application, error)
	CurrentStatus(app *Application) ApplicationStatus
}

// NewApplicationStateMachine returns the default implementation backed by
// the provided store. Same contract as the job machine: membership only,
// any-to-any.
func NewApplicationStateMachine(apps ApplicationStatusStore, opts ...StateMachineOption) ApplicationStateMachine {
	return &applicationStateMachine{
		stateMachineCore: newStateMachineCore(opts...),
		apps:             apps,
	}
}

type applicationStateMachine struct {
	stateMachineCore
	apps ApplicationStatusStore
}

func (sm *applicationStateMachine) Transition(ctx context.Context, actor ActorRef, app *Application, target ApplicationStatus, opts ...TransitionOption) (*Application, error) {
	if app == nil {
		return nil, ErrInvalidStatus.WithMetadata(map[string]any{
			"target": target,
			"reason": "application is nil",
		})
	}

	app.EnsureStatus()
	from := app.Status

	if !target.IsValid() {
		return nil, ErrInvalidStatus.WithMetadata(map[string]any{
			"entity": "application",
			"status": string(target),
		})
	}

	if from == target {
		return app, nil
	}

	options := buildTransitionOptions(opts...)
	now := sm.now()

	updated, err := sm.apps.UpdateStatus(ctx, app.ID, target, now)
	if err != nil {
		return nil, err
	}

	if updated != nil && updated.Status != "" {
		app.Status = updated.Status
		app.UpdatedAt = updated.UpdatedAt
	} else {
		app.Status = target
		app.UpdatedAt = &now
	}

	sm.recordActivity(ctx, ActivityEvent{
		EventType:  ActivityEventApplicationStatusChanged,
		Actor:      actor,
		EntityID:   app.ID.String(),
		FromStatus: string(from),
		ToStatus:   string(target),
		Metadata:   sm.transitionMetadata(options.metadata),
	})

	return app, nil
}

func (sm *applicationStateMachine) CurrentStatus(app *Application) ApplicationStatus {
	if app == nil {
		return ""
	}
	app.EnsureStatus()
	return app.Status
}
