package trayRepo

import (
	"context"
	"errors"
	"fmt"

	"viacampo/models"
)

// ErrNotFound is returned when an update targets a tray item that no longer
// exists at write time.
var ErrNotFound = errors.New("tray item not found")

// PartialReleaseError reports a release that committed some chunks before a
// later chunk failed. Released carries the count actually cleared so the
// caller can retry for the remainder.
type PartialReleaseError struct {
	TripID   string
	Released int
	Err      error
}

func (e *PartialReleaseError) Error() string {
	return fmt.Sprintf("partial release for trip %s: %d items cleared before failure: %v", e.TripID, e.Released, e.Err)
}

func (e *PartialReleaseError) Unwrap() error {
	return e.Err
}

// OrderUpdate is one id/position pair of a manual reordering.
type OrderUpdate struct {
	ID        string `json:"id"`
	TrayOrder int64  `json:"trayOrder"`
}

// TrayRepository is the shared tray queue of pending service tickets.
//
// Subscribe delivers the complete current list on every underlying change,
// never a diff. Reordering and bulk link/unlink are single atomic batches:
// every subscriber observes either all of a batch or none of it.
type TrayRepository interface {
	// Subscribe opens a live feed ordered by trayOrder ascending. The
	// returned stop function terminates the feed and is safe to call more
	// than once.
	Subscribe(ctx context.Context, onChange func([]models.TrayItem), onError func(error)) (func(), error)
	// List returns the current tray contents without opening a feed.
	List(ctx context.Context) ([]models.TrayItem, error)
	// Get returns one item, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.TrayItem, error)
	// Add writes a new unlinked item and returns its assigned id.
	Add(ctx context.Context, item models.TrayItem) (string, error)
	// Update merges fields into an existing item. Returns ErrNotFound when
	// the id does not exist.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Remove deletes the item. Removing a nonexistent id is not an error.
	Remove(ctx context.Context, id string) error
	// UpdateOrder applies all reorderings as one atomic batch.
	UpdateOrder(ctx context.Context, updates []OrderUpdate) error
	// MarkItemsInTrip stamps every listed item with the trip id and a
	// linkage timestamp, as one atomic batch.
	MarkItemsInTrip(ctx context.Context, ids []string, tripID string) error
	// ClearTripByTripID resets the linkage fields of every item linked to
	// tripID, in bounded chunks, and returns the count actually cleared.
	ClearTripByTripID(ctx context.Context, tripID string) (int, error)
}
