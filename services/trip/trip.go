// Package trip drives the trip lifecycle: creation with authorship stamping,
// linking tray items, and closure with report generation and tray release.
package trip

import (
	"context"
	"errors"
	"fmt"

	reportRepo "viacampo/database/repository/reports"
	trayRepo "viacampo/database/repository/tray"
	tripRepo "viacampo/database/repository/trip"
	"viacampo/models"
	"viacampo/services/report"
	"viacampo/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ErrUnauthenticated is returned when a write requiring authorship is
// attempted with no caller identity. The check runs before any write.
var ErrUnauthenticated = errors.New("caller is not authenticated")

// CloseResult is the outcome of closing a trip. Report is always populated
// when closure reached the formatting step, even if the tray release failed
// afterwards.
type CloseResult struct {
	Report   string `json:"report"`
	Released int    `json:"released"`
}

// TripService defines the trip lifecycle operations.
type TripService interface {
	CreateTrip(ctx context.Context, actor models.Actor, trip models.Trip) (string, error)
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	ListTrips(ctx context.Context, limit int) ([]models.Trip, error)
	AssignToTrip(ctx context.Context, tripID string, itemIDs []string) error
	CloseTrip(ctx context.Context, actor models.Actor, tripID, arrivalTime string, feedback []models.ClosureFeedback) (*CloseResult, error)
}

// TaskEnqueuer is the slice of asynq.Client the service uses, split out so
// tests can run without Redis.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultTripService is the production implementation.
type DefaultTripService struct {
	Trips   tripRepo.TripRepository
	Tray    trayRepo.TrayRepository
	Reports reportRepo.ClosureReportRepository
	Queue   TaskEnqueuer
	Logger  *zap.Logger
}

func (s *DefaultTripService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

// CreateTrip stamps the caller's identity onto the plan and persists it.
// A missing identity blocks the write entirely.
func (s *DefaultTripService) CreateTrip(ctx context.Context, actor models.Actor, trip models.Trip) (string, error) {
	if !actor.Authenticated() {
		return "", ErrUnauthenticated
	}
	if trip.Date == "" {
		return "", fmt.Errorf("trip date is required")
	}
	for _, city := range trip.Cities {
		if len(city.Clients) > models.MaxClientSlots {
			return "", fmt.Errorf("city %s exceeds %d client slots", city.Name, models.MaxClientSlots)
		}
	}

	trip.AutorUID = actor.UID
	trip.AutorEmail = actor.Email
	trip.ArrivalTime = ""
	trip.Feedback = nil

	return s.Trips.Create(ctx, trip)
}

func (s *DefaultTripService) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	return s.Trips.GetByID(ctx, id)
}

func (s *DefaultTripService) ListTrips(ctx context.Context, limit int) ([]models.Trip, error) {
	return s.Trips.List(ctx, limit)
}

func (s *DefaultTripService) AssignToTrip(ctx context.Context, tripID string, itemIDs []string) error {
	if _, err := s.Trips.GetByID(ctx, tripID); err != nil {
		return err
	}
	return s.Tray.MarkItemsInTrip(ctx, itemIDs, tripID)
}

// CloseTrip finalizes a trip: it records the arrival time and feedback,
// renders the closure report, releases the linked tray items and archives
// the report. The report is built from already-loaded state, so a failing
// release never suppresses it; a PartialReleaseError is returned alongside
// the result.
func (s *DefaultTripService) CloseTrip(ctx context.Context, actor models.Actor, tripID, arrivalTime string, feedback []models.ClosureFeedback) (*CloseResult, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	trip, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.Trips.AttachClosure(ctx, tripID, arrivalTime, feedback); err != nil {
		return nil, err
	}
	trip.ArrivalTime = arrivalTime
	trip.Feedback = feedback

	text := report.Format(*trip, feedback)

	released, releaseErr := s.Tray.ClearTripByTripID(ctx, tripID)
	result := &CloseResult{Report: text, Released: released}

	s.archiveAndNotify(ctx, actor, *trip, text, released)

	if releaseErr != nil {
		return result, releaseErr
	}
	return result, nil
}

// archiveAndNotify stores the generated report in the archive and queues the
// delivery task. Both are best-effort: failures are logged and never block
// the closure result already in hand.
func (s *DefaultTripService) archiveAndNotify(ctx context.Context, actor models.Actor, trip models.Trip, text string, released int) {
	if s.Reports == nil {
		return
	}

	reportID, err := s.Reports.Create(ctx, models.ClosureReport{
		TripID:        trip.ID,
		Date:          trip.Date,
		GeneratedBy:   actor.Email,
		Text:          text,
		ReleasedCount: released,
	})
	if err != nil {
		s.logger().Error("failed to archive closure report", zap.String("tripId", trip.ID), zap.Error(err))
		return
	}

	if s.Queue == nil {
		return
	}
	task, opts, err := tasks.NewReportDeliveryTask(models.ReportDeliveryPayload{
		TripID:   trip.ID,
		ReportID: reportID,
		Date:     trip.Date,
	})
	if err != nil {
		s.logger().Error("failed to build report delivery task", zap.String("tripId", trip.ID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		s.logger().Error("failed to enqueue report delivery", zap.String("tripId", trip.ID), zap.Error(err))
	}
}
