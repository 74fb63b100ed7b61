// Package users is the User Store: user records keyed by normalised email,
// kept as a single JSON object under the "users" key of the local store.
package users

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/client/models"
)

// Repository is the User Store contract. Emails are compared only after
// Normalize. Find returns (nil, nil) for an unknown email.
type Repository interface {
	Find(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Upsert(ctx context.Context, user *models.User) error
	Rekey(ctx context.Context, oldEmail, newEmail string) error
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]*models.User, error)
}

// Normalize trims and lower-cases an email so it can be used as a key.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
