package reportRepo

import (
	"context"
	"fmt"
	"time"

	"viacampo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new archived report and returns its ID.
func (r *mongoReportRepo) Create(ctx context.Context, report models.ClosureReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return "", fmt.Errorf("failed to archive closure report: %w", err)
	}
	return report.ID, nil
}

// GetByID returns an archived report by its ID.
func (r *mongoReportRepo) GetByID(ctx context.Context, id string) (*models.ClosureReport, error) {
	var report models.ClosureReport
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch closure report %s: %w", id, err)
	}
	return &report, nil
}

// GetByTripID fetches all archived reports for one trip.
func (r *mongoReportRepo) GetByTripID(ctx context.Context, tripID string) ([]models.ClosureReport, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"tripId": tripID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports for trip %s: %w", tripID, err)
	}
	defer cursor.Close(ctx)

	var reports []models.ClosureReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports for trip %s: %w", tripID, err)
	}
	return reports, nil
}

// List returns up to limit archived reports, most recent first.
func (r *mongoReportRepo) List(ctx context.Context, limit int) ([]models.ClosureReport, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list closure reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.ClosureReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode closure reports: %w", err)
	}
	return reports, nil
}
