package models

import (
	"strings"
	"time"
)

// MaxClientSlots caps the client list of a single city in a trip plan.
const MaxClientSlots = 30

// TripClient is one client slot in a city's visit list. A blank name means
// the slot is unused.
type TripClient struct {
	Name string `firestore:"name" json:"name"`
	Note string `firestore:"note" json:"note"`
}

// Filled reports whether the slot holds an actual client.
func (c TripClient) Filled() bool {
	return strings.TrimSpace(c.Name) != ""
}

// TripCity is a city entry in a trip plan. Enabled is independent of how
// many of its slots are filled.
type TripCity struct {
	Name    string       `firestore:"name" json:"name"`
	Enabled bool         `firestore:"enabled" json:"enabled"`
	Clients []TripClient `firestore:"clients" json:"clients"`
}

// FilledClients counts the slots with a non-blank client name.
func (c TripCity) FilledClients() int {
	n := 0
	for _, cl := range c.Clients {
		if cl.Filled() {
			n++
		}
	}
	return n
}

// MaterialLine is one equipment model / quantity pair in the manifest.
type MaterialLine struct {
	Model    string `firestore:"model" json:"model"`
	Quantity int    `firestore:"quantity" json:"quantity"`
}

// Materials is the manifest of equipment loaded for a trip.
type Materials struct {
	Onus       []MaterialLine `firestore:"onus" json:"onus"`
	Routers    []MaterialLine `firestore:"routers" json:"routers"`
	Connectors int            `firestore:"connectors" json:"connectors"`
	Flags      []string       `firestore:"flags" json:"flags"`
	Notes      string         `firestore:"notes" json:"notes"`
}

// ClosureFeedback is the per-client outcome recorded when a trip is
// finalized. ClientID is "<cityName>-<slotIndex>". A filled slot with no
// feedback entry is implicitly PENDENTE.
type ClosureFeedback struct {
	ClientID      string `firestore:"clientId" json:"clientId"`
	Status        string `firestore:"status" json:"status"`
	AttendantName string `firestore:"attendantName" json:"attendantName"`
}

// Trip is a day's field-service plan and, once closed, its outcome record.
// AutorUID and AutorEmail are stamped at creation and never user-editable.
type Trip struct {
	ID          string            `firestore:"-" json:"id"`
	Date        string            `firestore:"date" json:"date"` // YYYY-MM-DD
	StartTime   string            `firestore:"startTime" json:"startTime"`
	Technician  string            `firestore:"technician" json:"technician"`
	Assistant   string            `firestore:"assistant" json:"assistant"`
	Cities      []TripCity        `firestore:"cities" json:"cities"`
	Services    []string          `firestore:"services" json:"services"`
	Materials   Materials         `firestore:"materials" json:"materials"`
	ArrivalTime string            `firestore:"arrivalTime" json:"arrivalTime"`
	Feedback    []ClosureFeedback `firestore:"feedback" json:"feedback"`
	AutorUID    string            `firestore:"autor_uid" json:"autor_uid"`
	AutorEmail  string            `firestore:"autor_email" json:"autor_email"`
	CreatedAt   time.Time         `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// EnabledCities returns the enabled city entries in plan order.
func (t Trip) EnabledCities() []TripCity {
	var out []TripCity
	for _, c := range t.Cities {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}
