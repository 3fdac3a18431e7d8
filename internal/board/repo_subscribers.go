package board

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Subscribers is the job-alert subscription repository.
type Subscribers interface {
	Subscribe(ctx context.Context, email, phone string) (*Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]*Subscriber, int, error)
	CountActive(ctx context.Context) (int, error)
}

type subscribers struct {
	repository.Repository[*Subscriber]
	db *bun.DB
}

var _ Subscribers = (*subscribers)(nil)

// NewSubscribersRepository builds the bun-backed subscriber repository.
func NewSubscribersRepository(db *bun.DB) Subscribers {
	repo := repository.NewRepository[*Subscriber](db, repository.ModelHandlers[*Subscriber]{
		NewRecord: func() *Subscriber { return &Subscriber{} },
		GetID: func(s *Subscriber) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Subscriber, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &subscribers{
		Repository: repo,
		db:         db,
	}
}

// Subscribe inserts a new subscription, or reactivates an inactive record
// in place. Subscribing an already-active email is a conflict.
func (r *subscribers) Subscribe(ctx context.Context, email, phone string) (*Subscriber, error) {
	email = normalizeSubscriberEmail(email)

	existing, err := r.GetByEmail(ctx, email)
	if err != nil && !repository.IsRecordNotFound(err) {
		return nil, err
	}

	now := time.Now()

	if existing != nil {
		if existing.Active {
			return nil, ErrSubscriberExists.WithMetadata(map[string]any{
				"email": email,
			})
		}

		_, err := r.db.NewUpdate().
			Model((*Subscriber)(nil)).
			Set("active = ?", true).
			Set("subscribe_date = ?", now).
			Set("updated_at = ?", now).
			Where("id = ?", existing.ID).
			Exec(ctx)

		if err != nil {
			return nil, err
		}

		existing.Active = true
		existing.SubscribeDate = &now
		existing.UpdatedAt = &now
		return existing, nil
	}

	record := &Subscriber{
		ID:            uuid.New(),
		Email:         email,
		Phone:         phone,
		Active:        true,
		SubscribeDate: &now,
	}

	created, err := r.Repository.CreateTx(ctx, r.db, record)
	if err != nil {
		// A concurrent subscribe can slip in between the lookup and the
		// insert; the unique index on email reports it.
		if isUniqueViolation(err) {
			return nil, ErrSubscriberExists.WithMetadata(map[string]any{
				"email": email,
			})
		}
		return nil, err
	}

	return created, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// Unsubscribe deactivates the record; the row is kept so a later
// re-subscription reuses it.
func (r *subscribers) Unsubscribe(ctx context.Context, email string) error {
	email = normalizeSubscriberEmail(email)

	res, err := r.db.NewUpdate().
		Model((*Subscriber)(nil)).
		Set("active = ?", false).
		Set("updated_at = ?", time.Now()).
		Where("email = ?", email).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"entity": "subscriber",
				"email":  email,
			})
	}

	return nil
}

func (r *subscribers) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	record := &Subscriber{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", normalizeSubscriberEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"entity": "subscriber",
					"email":  email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *subscribers) List(ctx context.Context, activeOnly bool, page, limit int) ([]*Subscriber, int, error) {
	var records []*Subscriber

	q := r.db.NewSelect().Model(&records)

	if activeOnly {
		q = q.Where("?TableAlias.active = ?", true)
	}

	page, limit = normalizePage(page, limit)

	total, err := q.
		Order("subscribe_date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *subscribers) CountActive(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*Subscriber)(nil)).
		Where("?TableAlias.active = ?", true).
		Count(ctx)
}

func normalizeSubscriberEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
