package store

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the credential store contract the auth core depends on. Id
// assignment belongs to the database, not the caller.
type Users interface {
	ByUsername(ctx context.Context, username string) (*User, error)
	ByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdatePhone(ctx context.Context, id int64, phone string) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns a Users repository backed by bun.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) ByUsername(ctx context.Context, username string) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if IsRecordNotFound(err) {
			return nil, NewRecordNotFound().
				WithMetadata(map[string]any{"username": username})
		}
		return nil, err
	}

	return record, nil
}

func (r *users) ByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
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

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	if record.Role == "" {
		record.Role = RoleUser
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if IsConflict(err) {
			return nil, errors.Wrap(err, errors.CategoryConflict, "username or email already registered").
				WithCode(errors.CodeConflict)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create user")
	}

	return record, nil
}

func (r *users) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("hashed_password = ?", passwordHash).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

func (r *users) UpdatePhone(ctx context.Context, id int64, phone string) error {
	res, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("phone_number = ?", phone).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}
