// Package tray holds the business rules in front of the shared tray queue:
// field normalization, order defaults and trip linkage.
package tray

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	trayRepo "viacampo/database/repository/tray"
	"viacampo/models"
)

// ErrItemLinked is returned when a removal targets an item linked to a
// trip. Linked items leave the tray through trip closure, not deletion.
var ErrItemLinked = errors.New("tray item is linked to a trip")

// TrayService defines business logic for the tray queue.
type TrayService interface {
	// Subscribe opens a live feed of the full tray, ordered by trayOrder.
	Subscribe(ctx context.Context, onChange func([]models.TrayItem), onError func(error)) (func(), error)
	// List returns the current tray contents.
	List(ctx context.Context) ([]models.TrayItem, error)
	// Add normalizes and persists a new unlinked item, returning its id.
	Add(ctx context.Context, item models.TrayItem) (string, error)
	// Update merges the given fields into an existing item.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Remove deletes an unlinked item. Returns ErrItemLinked when the item
	// belongs to a trip.
	Remove(ctx context.Context, id string) error
	// UpdateOrder applies a manual reordering as one atomic batch.
	UpdateOrder(ctx context.Context, updates []trayRepo.OrderUpdate) error
	// AssignToTrip links the given items to a trip.
	AssignToTrip(ctx context.Context, tripID string, itemIDs []string) error
}

// DefaultTrayService is the production implementation.
type DefaultTrayService struct {
	Repo trayRepo.TrayRepository

	// nowMillis is swappable in tests; defaults to wall clock.
	nowMillis func() int64
}

func (s *DefaultTrayService) now() int64 {
	if s.nowMillis != nil {
		return s.nowMillis()
	}
	return time.Now().UnixMilli()
}

func (s *DefaultTrayService) Subscribe(ctx context.Context, onChange func([]models.TrayItem), onError func(error)) (func(), error) {
	return s.Repo.Subscribe(ctx, onChange, onError)
}

func (s *DefaultTrayService) List(ctx context.Context) ([]models.TrayItem, error) {
	return s.Repo.List(ctx)
}

// Add applies the tray entry defaults: status PENDENTE when absent, the
// attendant trimmed and upper-cased, and trayOrder set to the current time in
// milliseconds so new items sort after all prior ones.
func (s *DefaultTrayService) Add(ctx context.Context, item models.TrayItem) (string, error) {
	if strings.TrimSpace(item.ClientName) == "" {
		return "", fmt.Errorf("tray item requires a client name")
	}
	if item.Status == "" {
		item.Status = models.StatusPendente
	}
	item.Attendant = strings.ToUpper(strings.TrimSpace(item.Attendant))
	if item.TrayOrder == 0 {
		item.TrayOrder = s.now()
	}
	return s.Repo.Add(ctx, item)
}

func (s *DefaultTrayService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if attendant, ok := fields["attendant"].(string); ok {
		fields["attendant"] = strings.ToUpper(strings.TrimSpace(attendant))
	}
	return s.Repo.Update(ctx, id, fields)
}

// Remove deletes an item unless it is linked to a trip. Removing an id that
// no longer exists is not an error.
func (s *DefaultTrayService) Remove(ctx context.Context, id string) error {
	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, trayRepo.ErrNotFound) {
			return nil
		}
		return err
	}
	if item.Linked() {
		return fmt.Errorf("tray item %s: %w", id, ErrItemLinked)
	}
	return s.Repo.Remove(ctx, id)
}

func (s *DefaultTrayService) UpdateOrder(ctx context.Context, updates []trayRepo.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return s.Repo.UpdateOrder(ctx, updates)
}

func (s *DefaultTrayService) AssignToTrip(ctx context.Context, tripID string, itemIDs []string) error {
	if tripID == "" {
		return fmt.Errorf("trip id is required")
	}
	if len(itemIDs) == 0 {
		return nil
	}
	return s.Repo.MarkItemsInTrip(ctx, itemIDs, tripID)
}
