package store

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Todos exposes owner-scoped access for regular routes and unscoped access
// for the admin surface.
type Todos interface {
	ByOwner(ctx context.Context, ownerID int64) ([]Todo, error)
	ByIDForOwner(ctx context.Context, id, ownerID int64) (*Todo, error)
	All(ctx context.Context) ([]Todo, error)
	Create(ctx context.Context, record *Todo) (*Todo, error)
	Update(ctx context.Context, record *Todo) error
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
	Delete(ctx context.Context, id int64) error
}

type todos struct {
	db *bun.DB
}

var _ Todos = (*todos)(nil)

// NewTodosRepository returns a Todos repository backed by bun.
func NewTodosRepository(db *bun.DB) Todos {
	return &todos{db: db}
}

func (r *todos) ByOwner(ctx context.Context, ownerID int64) ([]Todo, error) {
	var records []Todo
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.owner_id = ?", ownerID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *todos) ByIDForOwner(ctx context.Context, id, ownerID int64) (*Todo, error) {
	record := &Todo{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.owner_id = ?", ownerID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if IsRecordNotFound(err) {
			return nil, NewRecordNotFound().
				WithMetadata(map[string]any{"id": id})
		}
		return nil, err
	}

	return record, nil
}

func (r *todos) All(ctx context.Context) ([]Todo, error) {
	var records []Todo
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *todos) Create(ctx context.Context, record *Todo) (*Todo, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create todo")
	}
	return record, nil
}

func (r *todos) Update(ctx context.Context, record *Todo) error {
	res, err := r.db.NewUpdate().
		Model(record).
		Column("title", "description", "priority", "complete").
		Where("id = ?", record.ID).
		Where("owner_id = ?", record.OwnerID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, record.ID)
}

func (r *todos) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.NewDelete().
		Model((*Todo)(nil)).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

func (r *todos) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*Todo)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

// requireAffected converts a zero-row update or delete into a not-found.
func requireAffected(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewRecordNotFound().
			WithMetadata(map[string]any{"id": id})
	}
	return nil
}
