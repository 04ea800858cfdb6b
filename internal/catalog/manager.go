package catalog

import (
	"context"
	"strings"
)

// Manager implements the business rules for provider-owned catalog
// entities. Ownership is enforced here; handlers only translate HTTP.
type Manager struct {
	services ServiceRepository
	staff    StaffRepository
}

func NewManager(services ServiceRepository, staff StaffRepository) *Manager {
	return &Manager{
		services: services,
		staff:    staff,
	}
}

type CreateServiceRequest struct {
	ProviderID      string
	Name            string
	DurationMinutes int
	PriceCents      int
}

type UpdateServiceRequest struct {
	Name       *string
	PriceCents *int
}

func (m *Manager) CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.PriceCents < 0 {
		return nil, ErrInvalidPrice
	}

	s := &Service{
		ProviderID:      req.ProviderID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	}

	if err := m.services.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) GetService(ctx context.Context, id string) (*Service, error) {
	return m.services.GetByID(ctx, id)
}

func (m *Manager) ListServices(ctx context.Context, filter ServiceFilter) ([]*Service, int, error) {
	return m.services.List(ctx, filter)
}

func (m *Manager) UpdateService(ctx context.Context, id, actorID string, req UpdateServiceRequest) (*Service, error) {
	s, err := m.ownedService(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		s.Name = strings.TrimSpace(*req.Name)
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, ErrInvalidPrice
		}
		s.PriceCents = *req.PriceCents
	}

	if err := m.services.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetServicePhoto records the stored photo path on the service.
func (m *Manager) SetServicePhoto(ctx context.Context, id, actorID, photoPath string) (*Service, error) {
	s, err := m.ownedService(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	s.PhotoPath = &photoPath
	if err := m.services.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteService retires a service. Blocked while any of its slots carries
// a live booking.
func (m *Manager) DeleteService(ctx context.Context, id, actorID string) error {
	if _, err := m.ownedService(ctx, id, actorID); err != nil {
		return err
	}

	busy, err := m.services.HasActiveBookings(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return ErrHasActiveBookings
	}

	return m.services.Delete(ctx, id)
}

func (m *Manager) ownedService(ctx context.Context, id, actorID string) (*Service, error) {
	s, err := m.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.ProviderID != actorID {
		return nil, ErrNotOwner
	}
	return s, nil
}

type CreateStaffRequest struct {
	ProviderID string
	Name       string
}

func (m *Manager) CreateStaff(ctx context.Context, req CreateStaffRequest) (*Staff, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	st := &Staff{
		ProviderID: req.ProviderID,
		Name:       strings.TrimSpace(req.Name),
	}

	if err := m.staff.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (m *Manager) GetStaff(ctx context.Context, id string) (*Staff, error) {
	return m.staff.GetByID(ctx, id)
}

func (m *Manager) ListStaff(ctx context.Context, filter StaffFilter) ([]*Staff, int, error) {
	return m.staff.List(ctx, filter)
}

func (m *Manager) RenameStaff(ctx context.Context, id, actorID, name string) (*Staff, error) {
	st, err := m.ownedStaff(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	st.Name = strings.TrimSpace(name)

	if err := m.staff.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (m *Manager) DeleteStaff(ctx context.Context, id, actorID string) error {
	if _, err := m.ownedStaff(ctx, id, actorID); err != nil {
		return err
	}
	return m.staff.Delete(ctx, id)
}

func (m *Manager) ownedStaff(ctx context.Context, id, actorID string) (*Staff, error) {
	st, err := m.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.ProviderID != actorID {
		return nil, ErrNotOwner
	}
	return st, nil
}
