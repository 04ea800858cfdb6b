package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServiceRepo struct {
	services map[string]*Service
	busy     map[string]bool
	nextID   int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{
		services: make(map[string]*Service),
		busy:     make(map[string]bool),
	}
}

func (r *fakeServiceRepo) Create(ctx context.Context, s *Service) error {
	r.nextID++
	s.ID = fmt.Sprintf("svc-%d", r.nextID)
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id string) (*Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) List(ctx context.Context, filter ServiceFilter) ([]*Service, int, error) {
	var out []*Service
	for _, s := range r.services {
		if filter.ProviderID != "" && s.ProviderID != filter.ProviderID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, s *Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return ErrServiceNotFound
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) HasActiveBookings(ctx context.Context, serviceID string) (bool, error) {
	return r.busy[serviceID], nil
}

type fakeStaffRepo struct {
	staff  map[string]*Staff
	nextID int
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[string]*Staff)}
}

func (r *fakeStaffRepo) Create(ctx context.Context, st *Staff) error {
	r.nextID++
	st.ID = fmt.Sprintf("staff-%d", r.nextID)
	cp := *st
	r.staff[st.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id string) (*Staff, error) {
	st, ok := r.staff[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStaffRepo) List(ctx context.Context, filter StaffFilter) ([]*Staff, int, error) {
	var out []*Staff
	for _, st := range r.staff {
		if filter.ProviderID != "" && st.ProviderID != filter.ProviderID {
			continue
		}
		cp := *st
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, st *Staff) error {
	if _, ok := r.staff[st.ID]; !ok {
		return ErrStaffNotFound
	}
	cp := *st
	r.staff[st.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.staff[id]; !ok {
		return ErrStaffNotFound
	}
	delete(r.staff, id)
	return nil
}

func newTestManager() (*Manager, *fakeServiceRepo, *fakeStaffRepo) {
	services := newFakeServiceRepo()
	staff := newFakeStaffRepo()
	return NewManager(services, staff), services, staff
}

func TestCreateServiceValidation(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateServiceRequest
		wantErr error
	}{
		{"empty name", CreateServiceRequest{ProviderID: "p1", Name: "  ", DurationMinutes: 30}, ErrEmptyName},
		{"zero duration", CreateServiceRequest{ProviderID: "p1", Name: "Cut", DurationMinutes: 0}, ErrInvalidDuration},
		{"negative price", CreateServiceRequest{ProviderID: "p1", Name: "Cut", DurationMinutes: 30, PriceCents: -1}, ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.CreateService(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}

	s, err := m.CreateService(ctx, CreateServiceRequest{
		ProviderID: "p1", Name: "  Haircut  ", DurationMinutes: 30, PriceCents: 2500,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Haircut", s.Name, "name is trimmed")
}

func TestUpdateServiceOwnership(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	s, err := m.CreateService(ctx, CreateServiceRequest{
		ProviderID: "p1", Name: "Massage", DurationMinutes: 60, PriceCents: 5000,
	})
	require.NoError(t, err)

	name := "Deep Tissue Massage"
	_, err = m.UpdateService(ctx, s.ID, "p2", UpdateServiceRequest{Name: &name})
	assert.True(t, errors.Is(err, ErrNotOwner))

	updated, err := m.UpdateService(ctx, s.ID, "p1", UpdateServiceRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 60, updated.DurationMinutes, "duration is immutable")
}

func TestDeleteServiceBlockedByActiveBookings(t *testing.T) {
	m, services, _ := newTestManager()
	ctx := context.Background()

	s, err := m.CreateService(ctx, CreateServiceRequest{
		ProviderID: "p1", Name: "Consult", DurationMinutes: 45,
	})
	require.NoError(t, err)

	services.busy[s.ID] = true
	err = m.DeleteService(ctx, s.ID, "p1")
	assert.True(t, errors.Is(err, ErrHasActiveBookings))

	services.busy[s.ID] = false
	require.NoError(t, m.DeleteService(ctx, s.ID, "p1"))

	_, err = m.GetService(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrServiceNotFound))
}

func TestStaffLifecycle(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	_, err := m.CreateStaff(ctx, CreateStaffRequest{ProviderID: "p1", Name: " "})
	assert.True(t, errors.Is(err, ErrEmptyName))

	st, err := m.CreateStaff(ctx, CreateStaffRequest{ProviderID: "p1", Name: "Alex"})
	require.NoError(t, err)

	_, err = m.RenameStaff(ctx, st.ID, "p2", "Sam")
	assert.True(t, errors.Is(err, ErrNotOwner))

	renamed, err := m.RenameStaff(ctx, st.ID, "p1", "Sam")
	require.NoError(t, err)
	assert.Equal(t, "Sam", renamed.Name)

	err = m.DeleteStaff(ctx, st.ID, "p2")
	assert.True(t, errors.Is(err, ErrNotOwner))
	require.NoError(t, m.DeleteStaff(ctx, st.ID, "p1"))
}
