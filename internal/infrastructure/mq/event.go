package mq

import (
	"time"

	"github.com/google/uuid"

	"contacts-api/internal/domain/contact"
)

// Routing keys of contact change events.
const (
	ContactCreated = "contact.created"
	ContactUpdated = "contact.updated"
	ContactDeleted = "contact.deleted"
)

var RoutingKeys = []string{ContactCreated, ContactUpdated, ContactDeleted}

type (
	Event struct {
		Id      uuid.UUID      `json:"event_id"`
		TS      time.Time      `json:"time_stamp"`
		Action  string         `json:"event_action"`
		OwnerID int64          `json:"owner_id"`
		Contact ContactPayload `json:"contact"`
	}
	ContactPayload struct {
		ID             int64   `json:"id"`
		FirstName      string  `json:"first_name,omitempty"`
		LastName       string  `json:"last_name,omitempty"`
		Email          string  `json:"email,omitempty"`
		Phone          string  `json:"phone,omitempty"`
		Birthday       string  `json:"birthday,omitempty"`
		AdditionalData *string `json:"additional_data,omitempty"`
	}
)

// NewContactEvent snapshots c. Deleted events carry the id only.
func NewContactEvent(action string, c *contact.Contact, now time.Time) Event {
	e := Event{
		Id:      uuid.New(),
		TS:      now.UTC(),
		Action:  action,
		OwnerID: int64(c.OwnerID),
		Contact: ContactPayload{ID: int64(c.ID)},
	}
	if action == ContactDeleted {
		return e
	}

	e.Contact.FirstName = c.FirstName
	e.Contact.LastName = c.LastName
	e.Contact.Email = c.Email
	e.Contact.Phone = c.Phone
	e.Contact.Birthday = c.Birthday.Format(time.DateOnly)
	e.Contact.AdditionalData = c.AdditionalData

	return e
}
