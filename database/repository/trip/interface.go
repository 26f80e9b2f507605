package tripRepo

import (
	"context"
	"errors"

	"viacampo/models"
)

// ErrNotFound is returned when a trip id does not exist.
var ErrNotFound = errors.New("trip not found")

// TripRepository is the trip plan collection, ordered by creation time
// descending for the history screen.
type TripRepository interface {
	// Create persists a new trip plan and returns its assigned id. The
	// caller stamps authorship before the write.
	Create(ctx context.Context, trip models.Trip) (string, error)
	// GetByID returns one trip, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Trip, error)
	// List returns up to limit trips, most recent first. Zero means no
	// limit.
	List(ctx context.Context, limit int) ([]models.Trip, error)
	// AttachClosure records the arrival time and the per-client feedback
	// collected when the trip is finalized.
	AttachClosure(ctx context.Context, id string, arrivalTime string, feedback []models.ClosureFeedback) error
}
