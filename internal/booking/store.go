package booking

import (
	"context"
	"time"
)

// Store is the persistence contract for the booking state machine. The
// two mutating operations are atomic: concurrent Claim calls on one slot
// have exactly one winner, and Cancel either flips both booking and slot
// or neither. Implementations must never split the status check from the
// status write.
type Store interface {
	// Claim flips the slot from open to booked and inserts a confirmed
	// booking, as one transaction. The slot must be open with a start
	// strictly after now; otherwise ErrSlotUnavailable.
	Claim(ctx context.Context, slotID, clientID string, now time.Time) (*Booking, error)

	// Cancel moves a confirmed booking to cancelled and reverts its slot
	// to open when the slot is still booked and starts after now. A
	// missing booking yields ErrNotFound, a non-confirmed one
	// ErrInvalidState.
	Cancel(ctx context.Context, bookingID string, now time.Time) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}
