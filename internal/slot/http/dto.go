package http

import (
	"time"

	"github.com/slotwise/appointment-backend/internal/pkg/request"
	"github.com/slotwise/appointment-backend/internal/slot"
)

// BulkGenerateBody is the payload for POST /availability-slots/bulk.
// Dates are calendar days, daily times wall-clock in the deployment zone.
type BulkGenerateBody struct {
	ServiceID  string  `json:"service_id" binding:"required,uuid"`
	StaffID    *string `json:"staff_id" binding:"omitempty,uuid"`
	StartDate  string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	DaysOfWeek []int   `json:"days_of_week" binding:"required,min=1,dive,min=0,max=6"`
	DailyStart string  `json:"daily_start" binding:"required"`
	DailyEnd   string  `json:"daily_end" binding:"required"`
}

type ListSlotsRequest struct {
	request.ListParams
	ServiceID string     `form:"service_id" binding:"omitempty,uuid"`
	StaffID   string     `form:"staff_id" binding:"omitempty,uuid"`
	Status    string     `form:"status" binding:"omitempty,oneof=open booked cancelled"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type SlotResponse struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	StaffID   *string   `json:"staff_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSlotResponse(s *slot.Slot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		ServiceID: s.ServiceID,
		StaffID:   s.StaffID,
		StartAt:   s.StartAt,
		EndAt:     s.EndAt,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

type IntervalResponse struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// BulkGenerateResponse reports the best-effort outcome: how many slots
// were created and which candidate ranges were skipped as overlapping.
type BulkGenerateResponse struct {
	CreatedCount int                `json:"created_count"`
	SkippedCount int                `json:"skipped_count"`
	Created      []SlotResponse     `json:"created"`
	Skipped      []IntervalResponse `json:"skipped"`
}

func NewBulkGenerateResponse(result *slot.BulkResult) BulkGenerateResponse {
	created := make([]SlotResponse, len(result.Created))
	for i, s := range result.Created {
		created[i] = NewSlotResponse(s)
	}
	skipped := make([]IntervalResponse, len(result.Skipped))
	for i, iv := range result.Skipped {
		skipped[i] = IntervalResponse{StartAt: iv.Start, EndAt: iv.End}
	}
	return BulkGenerateResponse{
		CreatedCount: len(created),
		SkippedCount: len(skipped),
		Created:      created,
		Skipped:      skipped,
	}
}
