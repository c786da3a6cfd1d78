package auth_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"

	"github.com/mplata/go-todos/internal/store"
)

// fakeUsers is an in-memory store.Users used by the authenticator and
// middleware tests. It mirrors the real repository's error contract:
// rich not-found on a miss, conflict on a duplicate username or email.
type fakeUsers struct {
	mu      sync.Mutex
	seq     int64
	records map[int64]*store.User
}

var _ store.Users = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{records: map[int64]*store.User{}}
}

func (f *fakeUsers) ByUsername(_ context.Context, username string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, record := range f.records {
		if record.Username == username {
			clone := *record
			return &clone, nil
		}
	}
	return nil, store.NewRecordNotFound()
}

func (f *fakeUsers) ByID(_ context.Context, id int64) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok {
		return nil, store.NewRecordNotFound()
	}
	clone := *record
	return &clone, nil
}

func (f *fakeUsers) Create(_ context.Context, record *store.User) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.records {
		if existing.Username == record.Username || existing.Email == record.Email {
			return nil, errors.New("username or email already registered", errors.CategoryConflict).
				WithCode(errors.CodeConflict)
		}
	}

	f.seq++
	record.ID = f.seq
	clone := *record
	f.records[record.ID] = &clone
	return record, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok {
		return store.NewRecordNotFound()
	}
	record.PasswordHash = passwordHash
	return nil
}

func (f *fakeUsers) UpdatePhone(_ context.Context, id int64, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok {
		return store.NewRecordNotFound()
	}
	record.Phone = phone
	return nil
}
