package booking

import (
	"context"
	"log"
	"time"
)

// Notifier delivers booking lifecycle notices to clients. It is an
// external collaborator: invoked at most once per successful claim or
// cancel, after the state change has committed, and its failure never
// rolls the state change back.
type Notifier interface {
	BookingConfirmed(ctx context.Context, clientID, bookingID string, startAt time.Time) error
	BookingCancelled(ctx context.Context, clientID, bookingID string, startAt time.Time) error
}

type Service interface {
	// Claim atomically converts an open slot into a booked slot plus a
	// confirmed booking for the client. Under concurrent claims of the
	// same slot exactly one caller succeeds; everyone else receives
	// ErrSlotUnavailable.
	Claim(ctx context.Context, slotID, clientID string) (*Booking, error)

	// Cancel moves a confirmed booking to cancelled. The slot reverts
	// to open when it has not started yet; a past slot is left booked
	// and simply no longer actionable.
	Cancel(ctx context.Context, bookingID, actorID string, isAdmin bool) (*Booking, error)

	GetByID(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func NewService(store Store, notifier Notifier) Service {
	return &service{
		store:    store,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Claim(ctx context.Context, slotID, clientID string) (*Booking, error) {
	b, err := s.store.Claim(ctx, slotID, clientID, s.now())
	if err != nil {
		// ErrSlotUnavailable included: a lost race is a plain business
		// outcome, surfaced without retry.
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, clientID, b.ID, b.SlotStartAt); err != nil {
			log.Printf("failed to notify client %s of booking %s: %v", clientID, b.ID, err)
		}
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, bookingID, actorID string, isAdmin bool) (*Booking, error) {
	existing, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing.ClientID != actorID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	b, err := s.store.Cancel(ctx, bookingID, s.now())
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.BookingCancelled(ctx, b.ClientID, b.ID, b.SlotStartAt); err != nil {
			log.Printf("failed to notify client %s of cancelled booking %s: %v", b.ClientID, b.ID, err)
		}
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.ClientID != actorID && !isAdmin {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.store.List(ctx, filter)
}
