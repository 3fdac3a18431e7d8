package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jobfinder/jobfinder/internal/board"
)

// DefaultDispatchTimeout bounds a single push delivery attempt.
const DefaultDispatchTimeout = 5 * time.Second

// PushResult reports the outcome of a push fan-out.
type PushResult struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
}

// PushSender delivers a push notification to subscribed devices.
type PushSender interface {
	SendPushNotifications(ctx context.Context, title, body string, data map[string]string) (PushResult, error)
}

// SenderFunc adapts a function to the PushSender interface.
type SenderFunc func(ctx context.Context, title, body string, data map[string]string) (PushResult, error)

// SendPushNotifications implements PushSender.
func (f SenderFunc) SendPushNotifications(ctx context.Context, title, body string, data map[string]string) (PushResult, error) {
	if f == nil {
		return PushResult{}, nil
	}
	return f(ctx, title, body, data)
}

// DispatcherOption customizes Dispatcher construction.
type DispatcherOption func(*Dispatcher)

// WithDispatchTimeout overrides the per-dispatch timeout.
func WithDispatchTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithDispatcherLogger overrides the logger.
func WithDispatcherLogger(logger Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher fires best-effort notifications on entity lifecycle events.
// Deliveries run detached from the request path: the triggering write
// never waits on, and never fails because of, a dispatch.
type Dispatcher struct {
	sender  PushSender
	timeout time.Duration
	logger  Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher around the given sender. A nil
// sender disables dispatching.
func NewDispatcher(sender PushSender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		timeout: DefaultDispatchTimeout,
		logger:  defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// JobCreated announces a newly posted job to subscribers. Returns
// immediately; the delivery happens on a detached goroutine with a
// bounded timeout, and failures are logged only.
func (d *Dispatcher) JobCreated(job *board.Job) {
	if d == nil || d.sender == nil || job == nil {
		return
	}

	title := "New Job Posted!"
	body := fmt.Sprintf("%s at %s", job.Title, job.Company)
	data := map[string]string{
		"type":  "job.created",
		"jobId": job.ID.String(),
	}

	d.dispatch(title, body, data)
}

func (d *Dispatcher) dispatch(title, body string, data map[string]string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		result, err := d.sender.SendPushNotifications(ctx, title, body, data)
		if err != nil {
			d.logger.Error("push dispatch failed: %v", err)
			return
		}

		d.logger.Info("push dispatched: success=%t sent=%d", result.Success, result.Sent)
	}()
}

// Flush waits for in-flight dispatches to finish. Intended for tests
// and graceful shutdown.
func (d *Dispatcher) Flush() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
