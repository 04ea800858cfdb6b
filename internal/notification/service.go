package notification

import (
	"context"
	"fmt"
	"time"
)

// Service writes and lists feed entries. Its write methods satisfy the
// Notifier interfaces declared by the booking and slot packages.
type Service interface {
	BookingConfirmed(ctx context.Context, clientID, bookingID string, startAt time.Time) error
	BookingCancelled(ctx context.Context, clientID, bookingID string, startAt time.Time) error
	SlotRetired(ctx context.Context, clientID string, startAt time.Time) error

	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) BookingConfirmed(ctx context.Context, clientID, bookingID string, startAt time.Time) error {
	return s.repo.Create(ctx, &Notification{
		UserID:    clientID,
		Kind:      KindBookingConfirmed,
		Message:   fmt.Sprintf("Your appointment on %s is confirmed.", startAt.Format(time.RFC1123)),
		BookingID: &bookingID,
	})
}

func (s *service) BookingCancelled(ctx context.Context, clientID, bookingID string, startAt time.Time) error {
	return s.repo.Create(ctx, &Notification{
		UserID:    clientID,
		Kind:      KindBookingCancelled,
		Message:   fmt.Sprintf("Your appointment on %s was cancelled.", startAt.Format(time.RFC1123)),
		BookingID: &bookingID,
	})
}

func (s *service) SlotRetired(ctx context.Context, clientID string, startAt time.Time) error {
	return s.repo.Create(ctx, &Notification{
		UserID:  clientID,
		Kind:    KindSlotRetired,
		Message: fmt.Sprintf("The provider withdrew the time slot on %s; your appointment was cancelled.", startAt.Format(time.RFC1123)),
	})
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}
