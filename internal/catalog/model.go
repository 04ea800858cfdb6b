package catalog

import (
	"errors"
	"time"
)

var (
	ErrServiceNotFound   = errors.New("service not found")
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrInvalidDuration   = errors.New("duration must be a positive number of minutes")
	ErrInvalidPrice      = errors.New("price cannot be negative")
	ErrNotOwner          = errors.New("not the owner of this entity")
	ErrHasActiveBookings = errors.New("service has slots with active bookings")
)

// Service is an offered unit of work. Its duration sizes generated
// availability slots and is immutable after creation.
type Service struct {
	ID              string
	ProviderID      string
	Name            string
	DurationMinutes int
	PriceCents      int
	PhotoPath       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Staff is a bookable person working for a provider. Slots may optionally
// be pinned to one staff member.
type Staff struct {
	ID         string
	ProviderID string
	Name       string
	CreatedAt  time.Time
}

// ServiceFilter defines parameters for listing services.
type ServiceFilter struct {
	ProviderID string
	Keyword    string
	Page       int
	PageSize   int
}

// StaffFilter defines parameters for listing staff.
type StaffFilter struct {
	ProviderID string
	Page       int
	PageSize   int
}
