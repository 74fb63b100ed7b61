package users

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/client/storage"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
)

type userMap map[string]*models.User

// StoreRepository keeps the whole user mapping in one blob. Every mutation
// rewrites the blob inside a single storage.Store.Update.
type StoreRepository struct {
	store storage.Store
	log   logging.Logger
}

func NewStoreRepository(store storage.Store, log logging.Logger) *StoreRepository {
	return &StoreRepository{store: store, log: log.With("component", "users")}
}

// decode never fails: a corrupted blob is logged and read as empty.
func (r *StoreRepository) decode(ctx context.Context, raw []byte) userMap {
	m := userMap{}
	if err := storage.DecodeJSON(raw, &m); err != nil {
		r.log.Warn(ctx, "discarding unreadable user store", "error", err)
		return userMap{}
	}
	if m == nil {
		return userMap{}
	}
	return m
}

func (r *StoreRepository) load(ctx context.Context) (userMap, error) {
	raw, err := r.store.Get(ctx, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return r.decode(ctx, raw), nil
}

// mutate returns errors from fn unwrapped so callers can match them.
func (r *StoreRepository) mutate(ctx context.Context, fn func(m userMap) error) error {
	var fnErr error
	err := r.store.Update(ctx, storage.KeyUsers, func(old []byte) ([]byte, error) {
		m := r.decode(ctx, old)
		if fnErr = fn(m); fnErr != nil {
			return nil, fnErr
		}
		return json.Marshal(m)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	return nil
}

func (r *StoreRepository) Find(ctx context.Context, email string) (*models.User, error) {
	m, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := m[Normalize(email)]
	if !ok || u == nil {
		return nil, nil
	}
	return u.Clone(), nil
}

// Create stores user unless its normalised email is already taken, in which
// case it returns common.ErrDuplicateUser. The check and the write share one
// Update.
func (r *StoreRepository) Create(ctx context.Context, user *models.User) error {
	rec := user.Clone()
	rec.Email = Normalize(user.Email)
	return r.mutate(ctx, func(m userMap) error {
		if existing, ok := m[rec.Email]; ok && existing != nil {
			return common.ErrDuplicateUser
		}
		m[rec.Email] = rec
		return nil
	})
}

// Upsert stores user under Normalize(user.Email), replacing any record
// already there. The stored email is the normalised one.
func (r *StoreRepository) Upsert(ctx context.Context, user *models.User) error {
	rec := user.Clone()
	rec.Email = Normalize(user.Email)
	return r.mutate(ctx, func(m userMap) error {
		m[rec.Email] = rec
		return nil
	})
}

// Rekey moves the record at oldEmail to newEmail. It fails with
// common.ErrEmailConflict when another record already owns newEmail, and
// with common.ErrorNotFound when there is nothing at oldEmail.
func (r *StoreRepository) Rekey(ctx context.Context, oldEmail, newEmail string) error {
	oldKey, newKey := Normalize(oldEmail), Normalize(newEmail)
	return r.mutate(ctx, func(m userMap) error {
		rec, ok := m[oldKey]
		if !ok || rec == nil {
			return common.ErrorNotFound
		}
		if _, taken := m[newKey]; taken && newKey != oldKey {
			return common.ErrEmailConflict
		}
		delete(m, oldKey)
		rec.Email = newKey
		m[newKey] = rec
		return nil
	})
}

func (r *StoreRepository) Delete(ctx context.Context, email string) error {
	key := Normalize(email)
	return r.mutate(ctx, func(m userMap) error {
		delete(m, key)
		return nil
	})
}

func (r *StoreRepository) List(ctx context.Context) ([]*models.User, error) {
	m, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*models.User, 0, len(m))
	for _, u := range m {
		if u != nil {
			result = append(result, u.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}
