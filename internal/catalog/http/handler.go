package http

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slotwise/appointment-backend/internal/auth"
	"github.com/slotwise/appointment-backend/internal/catalog"
	"github.com/slotwise/appointment-backend/internal/pkg/response"
	"github.com/slotwise/appointment-backend/internal/pkg/storage"
)

const maxPhotoSizeBytes = 5 << 20 // 5 MiB

type Handler struct {
	manager     *catalog.Manager
	blobs       storage.BlobStore
	thumbnailer *storage.Thumbnailer
}

func NewHandler(manager *catalog.Manager, blobs storage.BlobStore, thumbnailer *storage.Thumbnailer) *Handler {
	return &Handler{
		manager:     manager,
		blobs:       blobs,
		thumbnailer: thumbnailer,
	}
}

func serviceError(c *gin.Context, err error) {
	switch err {
	case catalog.ErrServiceNotFound, catalog.ErrStaffNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case catalog.ErrEmptyName, catalog.ErrInvalidDuration, catalog.ErrInvalidPrice:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case catalog.ErrNotOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case catalog.ErrHasActiveBookings:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		response.Error(c, err)
	}
}

func (h *Handler) CreateService(c *gin.Context) {
	var body CreateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.manager.CreateService(c.Request.Context(), catalog.CreateServiceRequest{
		ProviderID:      auth.GetUserID(c),
		Name:            body.Name,
		DurationMinutes: body.DurationMinutes,
		PriceCents:      body.PriceCents,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(s))
}

func (h *Handler) GetService(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.manager.GetService(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

func (h *Handler) ListServices(c *gin.Context) {
	var q ListServicesRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	services, total, err := h.manager.ListServices(c.Request.Context(), catalog.ServiceFilter{
		ProviderID: q.ProviderID,
		Keyword:    q.Keyword,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ServiceResponse, len(services))
	for i, s := range services {
		items[i] = NewServiceResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) UpdateService(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := h.manager.UpdateService(c.Request.Context(), id, auth.GetUserID(c), catalog.UpdateServiceRequest{
		Name:       body.Name,
		PriceCents: body.PriceCents,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

func (h *Handler) DeleteService(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.manager.DeleteService(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadServicePhoto stores the uploaded image, renders a thumbnail-sized
// JPEG and records the path on the service.
func (h *Handler) UploadServicePhoto(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}
	if fileHeader.Size > maxPhotoSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo too large"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo must be an image"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	rendered, err := h.thumbnailer.Render(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}

	photoPath := path.Join("services", uuid.NewString()+".jpg")
	if err := h.blobs.Put(c.Request.Context(), photoPath, rendered); err != nil {
		response.Error(c, err)
		return
	}

	s, err := h.manager.SetServicePhoto(c.Request.Context(), id, auth.GetUserID(c), photoPath)
	if err != nil {
		// Ownership or lookup failed after the blob was written; don't
		// leave the orphan behind.
		_ = h.blobs.Remove(c.Request.Context(), photoPath)
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

// GetServicePhoto streams the stored photo.
func (h *Handler) GetServicePhoto(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.manager.GetService(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if s.PhotoPath == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service has no photo"})
		return
	}

	r, err := h.blobs.Open(c.Request.Context(), *s.PhotoPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}
	defer r.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, r)
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var body CreateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	st, err := h.manager.CreateStaff(c.Request.Context(), catalog.CreateStaffRequest{
		ProviderID: auth.GetUserID(c),
		Name:       body.Name,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewStaffResponse(st))
}

func (h *Handler) ListStaff(c *gin.Context) {
	var q ListStaffRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	staff, total, err := h.manager.ListStaff(c.Request.Context(), catalog.StaffFilter{
		ProviderID: q.ProviderID,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]StaffResponse, len(staff))
	for i, st := range staff {
		items[i] = NewStaffResponse(st)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	st, err := h.manager.RenameStaff(c.Request.Context(), id, auth.GetUserID(c), body.Name)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStaffResponse(st))
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.manager.DeleteStaff(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
