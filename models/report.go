package models

import "time"

// ClosureReport is an archived copy of the report generated when a trip was
// closed, kept for the history screen and for audit.
type ClosureReport struct {
	ID            string    `bson:"id" json:"id"`
	TripID        string    `bson:"tripId" json:"tripId"`
	Date          string    `bson:"date" json:"date"`
	GeneratedBy   string    `bson:"generatedBy" json:"generatedBy"`
	Text          string    `bson:"text" json:"text"`
	ReleasedCount int       `bson:"releasedCount" json:"releasedCount"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// ReportDeliveryPayload is the asynq task payload queued after a trip is
// closed, consumed by the notification worker.
type ReportDeliveryPayload struct {
	TripID   string `json:"tripId"`
	ReportID string `json:"reportId"`
	Date     string `json:"date"`
}
