package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

// Kind labels what happened; the message is the human-readable rendering.
type Kind string

const (
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
	KindSlotRetired      Kind = "slot_retired"
)

// Notification is one entry in a user's feed. Delivery to external
// channels (email, push) is out of scope; the feed is the record that
// the trigger fired.
type Notification struct {
	ID        string
	UserID    string
	Kind      Kind
	Message   string
	BookingID *string
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UserID   string
	Page     int
	PageSize int
}
