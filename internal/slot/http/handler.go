package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slotwise/appointment-backend/internal/auth"
	"github.com/slotwise/appointment-backend/internal/pkg/response"
	"github.com/slotwise/appointment-backend/internal/slot"
)

type Handler struct {
	service slot.Service
	loc     *time.Location
}

func NewHandler(service slot.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		service: service,
		loc:     loc,
	}
}

func (h *Handler) BulkGenerate(c *gin.Context) {
	var body BulkGenerateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startDate, err := time.ParseInLocation("2006-01-02", body.StartDate, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	endDate, err := time.ParseInLocation("2006-01-02", body.EndDate, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	dailyStart, err := slot.ParseTimeOfDay(body.DailyStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid daily_start"})
		return
	}
	dailyEnd, err := slot.ParseTimeOfDay(body.DailyEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid daily_end"})
		return
	}

	days := make([]time.Weekday, len(body.DaysOfWeek))
	for i, d := range body.DaysOfWeek {
		days[i] = time.Weekday(d)
	}

	result, err := h.service.BulkGenerate(c.Request.Context(), slot.BulkGenerateRequest{
		ActorID:    auth.GetUserID(c),
		ServiceID:  body.ServiceID,
		StaffID:    body.StaffID,
		StartDate:  startDate,
		EndDate:    endDate,
		DaysOfWeek: days,
		DailyStart: dailyStart,
		DailyEnd:   dailyEnd,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBulkGenerateResponse(result))
}

func (h *Handler) List(c *gin.Context) {
	var q ListSlotsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	slots, total, err := h.service.List(c.Request.Context(), slot.Filter{
		ServiceID: q.ServiceID,
		StaffID:   q.StaffID,
		Status:    q.Status,
		From:      q.From,
		To:        q.To,
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponse(s))
}

func (h *Handler) Retire(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Retire(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
