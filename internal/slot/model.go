package slot

import (
	"net/http"
	"time"

	"github.com/slotwise/appointment-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "slot not found")
	ErrInvalidRange  = apperror.New(http.StatusBadRequest, "start date must not be after end date")
	ErrInvalidInput  = apperror.New(http.StatusBadRequest, "invalid generation parameters")
	ErrNotOwner      = apperror.New(http.StatusForbidden, "not the owner of this slot")
	ErrStaffMismatch = apperror.New(http.StatusBadRequest, "staff member does not belong to the service provider")
)

// Status is the lifecycle state of an availability slot.
//
//	open --claim--> booked --cancel--> open
//	open/booked --retire--> cancelled (terminal)
type Status string

const (
	StatusOpen      Status = "open"
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
)

// Slot is a bookable time interval belonging to a service, optionally
// pinned to one staff member.
type Slot struct {
	ID        string
	ServiceID string
	StaffID   *string
	StartAt   time.Time
	EndAt     time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval is a half-open candidate time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Filter defines parameters for listing slots.
type Filter struct {
	ServiceID string
	StaffID   string
	Status    string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}
