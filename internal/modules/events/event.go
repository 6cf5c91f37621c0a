package events

import "time"

type Type string

const (
	BlockCreated    Type = "block.created"
	BlockDeleted    Type = "block.deleted"
	CabinCreated    Type = "cabin.created"
	CabinUpdated    Type = "cabin.updated"
	CabinActivation Type = "cabin.activation"
)

// Event is pushed to connected admin clients after a successful write.
type Event struct {
	Type    Type      `json:"type"`
	CabinID int64     `json:"cabin_id"`
	BlockID *int64    `json:"block_id,omitempty"`
	Active  *bool     `json:"active,omitempty"`
	AdminID int64     `json:"admin_id"`
	At      time.Time `json:"at"`
}

func New(t Type, cabinID, adminID int64) Event {
	return Event{Type: t, CabinID: cabinID, AdminID: adminID, At: time.Now().UTC()}
}

func (e Event) WithBlock(id int64) Event {
	e.BlockID = &id
	return e
}

func (e Event) WithActive(active bool) Event {
	e.Active = &active
	return e
}
