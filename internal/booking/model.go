package booking

import (
	"net/http"
	"time"

	"github.com/slotwise/appointment-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "booking not found")

	// ErrSlotUnavailable is the expected business outcome for a claim
	// that lost the race, targeted a non-open slot, or targeted a slot
	// already in the past. It is reported to the caller as-is and never
	// retried.
	ErrSlotUnavailable = apperror.New(http.StatusConflict, "slot is not available")

	ErrInvalidState     = apperror.New(http.StatusBadRequest, "booking is not in a cancellable state")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking records a client occupying one availability slot. At most one
// non-cancelled booking exists per slot at any time.
type Booking struct {
	ID        string
	SlotID    string
	ClientID  string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized slot/service fields for list and detail views.
	SlotStartAt time.Time
	SlotEndAt   time.Time
	ServiceID   string
	ServiceName string
}

// Filter defines parameters for listing bookings.
type Filter struct {
	ClientID  string
	ServiceID string
	Status    string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}
