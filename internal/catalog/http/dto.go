package http

import (
	"time"

	"github.com/slotwise/appointment-backend/internal/catalog"
	"github.com/slotwise/appointment-backend/internal/pkg/request"
)

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	PriceCents      int    `json:"price_cents" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name       *string `json:"name"`
	PriceCents *int    `json:"price_cents"`
}

type ListServicesRequest struct {
	request.ListParams
	ProviderID string `form:"provider_id" binding:"omitempty,uuid"`
	Keyword    string `form:"keyword"`
}

type ServiceResponse struct {
	ID              string    `json:"id"`
	ProviderID      string    `json:"provider_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int       `json:"price_cents"`
	PhotoURL        *string   `json:"photo_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	var photoURL *string
	if s.PhotoPath != nil {
		u := "/v1/services/" + s.ID + "/photo"
		photoURL = &u
	}
	return ServiceResponse{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		PhotoURL:        photoURL,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type CreateStaffRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateStaffRequest struct {
	Name string `json:"name" binding:"required"`
}

type ListStaffRequest struct {
	request.ListParams
	ProviderID string `form:"provider_id" binding:"omitempty,uuid"`
}

type StaffResponse struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewStaffResponse(st *catalog.Staff) StaffResponse {
	return StaffResponse{
		ID:         st.ID,
		ProviderID: st.ProviderID,
		Name:       st.Name,
		CreatedAt:  st.CreatedAt,
	}
}
