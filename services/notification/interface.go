package notification

import "context"

// NotificationService announces application events to the field team's
// devices.
type NotificationService interface {
	// SendReportReady notifies subscribers that the closure report of a
	// trip is available.
	SendReportReady(ctx context.Context, tripID, date string) error
}
