package board

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	JobID  *uuid.UUID
	Status ApplicationStatus
	Page   int
	Limit  int
}

// Applications is the application repository.
type Applications interface {
	Create(ctx context.Context, record *Application) (*Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]*Application, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus, updatedAt time.Time) (*Application, error)
	Count(ctx context.Context) (int, error)
}

type applications struct {
	repository.Repository[*Application]
	db *bun.DB
}

var _ Applications = (*applications)(nil)
var _ ApplicationStatusStore = (*applications)(nil)

// NewApplicationsRepository builds the bun-backed application repository.
func NewApplicationsRepository(db *bun.DB) Applications {
	repo := repository.NewRepository[*Application](db, repository.ModelHandlers[*Application]{
		NewRecord: func() *Application { return &Application{} },
		GetID: func(a *Application) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Application, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &applications{
		Repository: repo,
		db:         db,
	}
}

func (r *applications) Create(ctx context.Context, record *Application) (*Application, error) {
	prepareApplicationDefaults(record)
	return r.Repository.CreateTx(ctx, r.db, record)
}

func (r *applications) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	record := &Application{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"entity": "application",
					"id":     id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *applications) List(ctx context.Context, filter ApplicationFilter) ([]*Application, int, error) {
	var records []*Application

	q := r.db.NewSelect().Model(&records)

	if filter.JobID != nil {
		q = q.Where("?TableAlias.job_id = ?", *filter.JobID)
	}

	if filter.Status != "" {
		q = q.Where("?TableAlias.status = ?", filter.Status)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	total, err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *applications) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Application)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"entity": "application",
				"id":     id.String(),
			})
	}

	return nil
}

// UpdateStatus writes only status and updated_at; every other column is
// left untouched.
func (r *applications) UpdateStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus, updatedAt time.Time) (*Application, error) {
	res, err := r.db.NewUpdate().
		Model((*Application)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", updatedAt).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"entity": "application",
				"id":     id.String(),
			})
	}

	return r.GetByID(ctx, id)
}

func (r *applications) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Application)(nil)).Count(ctx)
}

func prepareApplicationDefaults(record *Application) {
	if record == nil {
		return
	}

	record.EnsureStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.CreatedAt == nil {
		now := time.Now()
		record.CreatedAt = &now
	}
}
