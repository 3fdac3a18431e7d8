package board

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Jobs() Jobs
	Applications() Applications
	Subscribers() Subscribers
}

type mngr struct {
	db           *bun.DB
	jobs         Jobs
	applications Applications
	subscribers  Subscribers
}

// NewRepositoryManager builds the repository set over an explicitly
// injected database handle.
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:           db,
		jobs:         NewJobsRepository(db),
		applications: NewApplicationsRepository(db),
		subscribers:  NewSubscribersRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.jobs == nil {
		return errors.New("repository jobs should be initialized")
	}

	if m.applications == nil {
		return errors.New("repository applications should be initialized")
	}

	if m.subscribers == nil {
		return errors.New("repository subscribers should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Jobs() Jobs {
	return m.jobs
}

func (m mngr) Applications() Applications {
	return m.applications
}

func (m mngr) Subscribers() Subscribers {
	return m.subscribers
}
