package http

import (
	"time"

	"github.com/slotwise/appointment-backend/internal/booking"
	"github.com/slotwise/appointment-backend/internal/pkg/request"
)

// ClaimBookingBody maps POST /bookings onto a claim of one slot.
type ClaimBookingBody struct {
	SlotID string `json:"slot_id" binding:"required,uuid"`
}

type ListBookingsRequest struct {
	request.ListParams
	ServiceID string     `form:"service_id" binding:"omitempty,uuid"`
	Status    string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	ClientID  string     `form:"client_id" binding:"omitempty,uuid"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	SlotID      string    `json:"slot_id"`
	ClientID    string    `json:"client_id"`
	ServiceID   string    `json:"service_id"`
	ServiceName string    `json:"service_name"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		SlotID:      b.SlotID,
		ClientID:    b.ClientID,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		StartAt:     b.SlotStartAt,
		EndAt:       b.SlotEndAt,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
