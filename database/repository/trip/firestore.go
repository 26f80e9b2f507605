package tripRepo

import (
	"context"
	"fmt"

	"viacampo/database"
	"viacampo/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const tripCollection = "trips"

// FirestoreTripRepo implements TripRepository on Firestore.
type FirestoreTripRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreTripRepo creates a TripRepository backed by the shared
// Firestore client.
func NewFirestoreTripRepo() TripRepository {
	client := database.FirestoreClient
	return &FirestoreTripRepo{
		client: client,
		coll:   client.Collection(tripCollection),
	}
}

func (r *FirestoreTripRepo) Create(ctx context.Context, trip models.Trip) (string, error) {
	doc := r.coll.NewDoc()
	if _, err := doc.Set(ctx, trip); err != nil {
		return "", fmt.Errorf("failed to create trip: %w", err)
	}
	return doc.ID, nil
}

func (r *FirestoreTripRepo) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	doc, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("trip %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip %s: %w", id, err)
	}

	var trip models.Trip
	if err := doc.DataTo(&trip); err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", id, err)
	}
	trip.ID = doc.Ref.ID
	return &trip, nil
}

func (r *FirestoreTripRepo) List(ctx context.Context, limit int) ([]models.Trip, error) {
	q := r.coll.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	trips := []models.Trip{}
	for _, doc := range docs {
		var trip models.Trip
		if err := doc.DataTo(&trip); err != nil {
			return nil, fmt.Errorf("failed to decode trip %s: %w", doc.Ref.ID, err)
		}
		trip.ID = doc.Ref.ID
		trips = append(trips, trip)
	}
	return trips, nil
}

func (r *FirestoreTripRepo) AttachClosure(ctx context.Context, id string, arrivalTime string, feedback []models.ClosureFeedback) error {
	updates := []firestore.Update{
		{Path: "arrivalTime", Value: arrivalTime},
		{Path: "feedback", Value: feedback},
	}
	if _, err := r.coll.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("trip %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to attach closure to trip %s: %w", id, err)
	}
	return nil
}
