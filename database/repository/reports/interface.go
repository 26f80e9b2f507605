package reportRepo

import (
	"context"

	"viacampo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ClosureReportRepository archives the report text generated when a trip is
// closed.
type ClosureReportRepository interface {
	Create(ctx context.Context, report models.ClosureReport) (string, error)
	GetByID(ctx context.Context, id string) (*models.ClosureReport, error)
	GetByTripID(ctx context.Context, tripID string) ([]models.ClosureReport, error)
	List(ctx context.Context, limit int) ([]models.ClosureReport, error)
}

type mongoReportRepo struct {
	coll *mongo.Collection
}

// NewMongoReportRepo returns a ClosureReportRepository using MongoDB.
func NewMongoReportRepo(client *mongo.Client) ClosureReportRepository {
	db := client.Database("viacampo")
	return &mongoReportRepo{
		coll: db.Collection("closure_reports"),
	}
}
