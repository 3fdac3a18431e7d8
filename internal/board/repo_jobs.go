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

// JobFilter narrows job listings. Zero values mean "no filter".
type JobFilter struct {
	Query      string
	Category   string
	Type       string
	Location   string
	Status     JobStatus
	ActiveOnly bool
	Featured   *bool
	Page       int
	Limit      int
}

// Jobs is the job posting repository.
type Jobs interface {
	Create(ctx context.Context, record *Job) (*Job, error)
	Update(ctx context.Context, record *Job) (*Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]*Job, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status JobStatus, updatedAt time.Time) (*Job, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementApplicants(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[JobStatus]int, error)
}

type jobs struct {
	repository.Repository[*Job]
	db *bun.DB
}

var _ Jobs = (*jobs)(nil)
var _ JobStatusStore = (*jobs)(nil)

// NewJobsRepository builds the bun-backed job repository.
func NewJobsRepository(db *bun.DB) Jobs {
	repo := repository.NewRepository[*Job](db, repository.ModelHandlers[*Job]{
		NewRecord: func() *Job { return &Job{} },
		GetID: func(j *Job) uuid.UUID {
			if j == nil {
				return uuid.Nil
			}
			return j.ID
		},
		SetID: func(j *Job, id uuid.UUID) {
			if j != nil {
				j.ID = id
			}
		},
	})

	return &jobs{
		Repository: repo,
		db:         db,
	}
}

func (r *jobs) Create(ctx context.Context, record *Job) (*Job, error) {
	prepareJobDefaults(record)
	return r.Repository.CreateTx(ctx, r.db, record)
}

// Update performs a partial merge: only the non-zero fields of record are
// written. UpdatedAt is always stamped.
func (r *jobs) Update(ctx context.Context, record *Job) (*Job, error) {
	now := time.Now()
	record.UpdatedAt = &now
	return r.Repository.UpdateTx(ctx, r.db, record, repository.UpdateByID(record.ID.String()))
}

func (r *jobs) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	record := &Job{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"entity": "job",
					"id":     id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *jobs) List(ctx context.Context, filter JobFilter) ([]*Job, int, error) {
	var records []*Job

	q := r.db.NewSelect().Model(&records)

	if filter.ActiveOnly {
		q = q.Where("?TableAlias.status = ?", JobStatusActive)
	} else if filter.Status != "" {
		q = q.Where("?TableAlias.status = ?", filter.Status)
	}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.title LIKE ?", pattern).
				WhereOr("?TableAlias.company LIKE ?", pattern).
				WhereOr("?TableAlias.location LIKE ?", pattern)
		})
	}

	if filter.Category != "" {
		q = q.Where("?TableAlias.category = ?", filter.Category)
	}

	if filter.Type != "" {
		q = q.Where("?TableAlias.type = ?", filter.Type)
	}

	if filter.Location != "" {
		q = q.Where("?TableAlias.location LIKE ?", "%"+filter.Location+"%")
	}

	if filter.Featured != nil {
		q = q.Where("?TableAlias.featured = ?", *filter.Featured)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	total, err := q.
		Order("posted_date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *jobs) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Job)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"entity": "job",
				"id":     id.String(),
			})
	}

	return nil
}

// UpdateStatus writes only status and updated_at; every other column is
// left untouched.
func (r *jobs) UpdateStatus(ctx context.Context, id uuid.UUID, status JobStatus, updatedAt time.Time) (*Job, error) {
	res, err := r.db.NewUpdate().
		Model((*Job)(nil)).
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
				"entity": "job",
				"id":     id.String(),
			})
	}

	return r.GetByID(ctx, id)
}

// IncrementViews is a non-transactional counter bump; concurrent reads may
// race and lose updates, which is acceptable here.
func (r *jobs) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*Job)(nil)).
		Set("views = views + 1").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *jobs) IncrementApplicants(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*Job)(nil)).
		Set("applicants = applicants + 1").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *jobs) CountByStatus(ctx context.Context) (map[JobStatus]int, error) {
	var rows []struct {
		Status JobStatus `bun:"status"`
		Total  int       `bun:"total"`
	}

	err := r.db.NewSelect().
		Model((*Job)(nil)).
		Column("status").
		ColumnExpr("count(*) AS total").
		Group("status").
		Scan(ctx, &rows)

	if err != nil {
		return nil, err
	}

	counts := make(map[JobStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}

	return counts, nil
}

func prepareJobDefaults(record *Job) {
	if record == nil {
		return
	}

	record.EnsureStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.PostedDate == nil {
		now := time.Now()
		record.PostedDate = &now
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
