package directoryRepo

import (
	"context"
	"errors"

	"viacampo/models"
)

// ErrNotFound is returned when a uid has no directory row.
var ErrNotFound = errors.New("app user not found")

// DirectoryRepository is the roster of application users, ordered by email.
type DirectoryRepository interface {
	// Subscribe opens a live feed of the full roster, delivered on every
	// underlying change. The returned stop function is safe to call more
	// than once.
	Subscribe(ctx context.Context, onChange func([]models.AppUser), onError func(error)) (func(), error)
	// List returns the current roster without opening a feed.
	List(ctx context.Context) ([]models.AppUser, error)
	// GetByUID returns one user, or ErrNotFound.
	GetByUID(ctx context.Context, uid string) (*models.AppUser, error)
	// Upsert writes the full user row, creating it if absent.
	Upsert(ctx context.Context, user models.AppUser) error
	// SetActive toggles the active gate of a user.
	SetActive(ctx context.Context, uid string, active bool) error
	// SetPermissions replaces the permission set of a user.
	SetPermissions(ctx context.Context, uid string, permissions []string) error
}
