package http

import (
	"time"

	"github.com/slotwise/appointment-backend/internal/notification"
	"github.com/slotwise/appointment-backend/internal/pkg/request"
)

type ListNotificationsRequest struct {
	request.ListParams
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	BookingID *string   `json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Message:   n.Message,
		BookingID: n.BookingID,
		CreatedAt: n.CreatedAt,
	}
}
