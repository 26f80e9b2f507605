package models

import "time"

// Tray item status categories. Status is free-form in the store; these are
// the values the application itself writes.
const (
	StatusPendente     = "PENDENTE"
	StatusRealizado    = "REALIZADO"
	StatusNaoRealizado = "NAO_REALIZADO"
	StatusAusente      = "AUSENTE"
)

// DefaultTrayOrder is assigned on read when a stored item has no usable
// trayOrder, so it sorts after every manually ordered item.
const DefaultTrayOrder = 9999

// TrayItem is a pending or trip-linked field-service ticket.
type TrayItem struct {
	ID          string     `firestore:"-" json:"id"`
	Region      string     `firestore:"region" json:"region"`
	City        string     `firestore:"city" json:"city"`
	Date        string     `firestore:"date" json:"date"`
	ClientName  string     `firestore:"clientName" json:"clientName"`
	Status      string     `firestore:"status" json:"status"`
	Equipment   string     `firestore:"equipment" json:"equipment"`
	Observation string     `firestore:"observation" json:"observation"`
	Attendant   string     `firestore:"attendant" json:"attendant"`
	TrayOrder   int64      `firestore:"trayOrder" json:"trayOrder"`
	TripID      *string    `firestore:"tripId" json:"tripId"`
	TripAt      *time.Time `firestore:"tripAt" json:"tripAt"`
	CreatedAt   time.Time  `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt   time.Time  `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// Linked reports whether the item currently belongs to a trip.
func (t TrayItem) Linked() bool {
	return t.TripID != nil && *t.TripID != ""
}
