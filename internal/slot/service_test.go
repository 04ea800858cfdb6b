package slot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/appointment-backend/internal/catalog"
)

// fakeRepo keeps slots in memory and applies the same overlap rule as
// the SQL implementation.
type fakeRepo struct {
	slots  []*Slot
	nextID int

	// clientOnSlot maps a slot ID to the client holding a live booking,
	// consumed by Retire.
	clientOnSlot map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clientOnSlot: make(map[string]string)}
}

func (r *fakeRepo) CreateIfFree(ctx context.Context, s *Slot) (bool, error) {
	for _, other := range r.slots {
		if other.Status == StatusCancelled {
			continue
		}
		if !other.StartAt.Before(s.EndAt) || !other.EndAt.After(s.StartAt) {
			continue
		}
		if s.StaffID != nil {
			if other.StaffID != nil && *other.StaffID == *s.StaffID {
				return false, nil
			}
		} else if other.ServiceID == s.ServiceID && other.StaffID == nil {
			return false, nil
		}
	}

	r.nextID++
	s.ID = fmt.Sprintf("slot-%d", r.nextID)
	s.Status = StatusOpen
	cp := *s
	r.slots = append(r.slots, &cp)
	return true, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Slot, error) {
	for _, s := range r.slots {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	var out []*Slot
	for _, s := range r.slots {
		if filter.ServiceID != "" && s.ServiceID != filter.ServiceID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Retire(ctx context.Context, id string) (*string, error) {
	for _, s := range r.slots {
		if s.ID != id {
			continue
		}
		if s.Status == StatusCancelled {
			return nil, nil
		}
		s.Status = StatusCancelled
		if cid, ok := r.clientOnSlot[id]; ok {
			return &cid, nil
		}
		return nil, nil
	}
	return nil, ErrNotFound
}

type fakeNotifier struct {
	retired []string
}

func (n *fakeNotifier) SlotRetired(ctx context.Context, clientID string, startAt time.Time) error {
	n.retired = append(n.retired, clientID)
	return nil
}

// stub catalog repositories: only the lookups used by the slot service
// are meaningful.
type stubServiceRepo struct {
	services map[string]*catalog.Service
}

func (r *stubServiceRepo) Create(ctx context.Context, s *catalog.Service) error { return nil }
func (r *stubServiceRepo) GetByID(ctx context.Context, id string) (*catalog.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return s, nil
}
func (r *stubServiceRepo) List(ctx context.Context, f catalog.ServiceFilter) ([]*catalog.Service, int, error) {
	return nil, 0, nil
}
func (r *stubServiceRepo) Update(ctx context.Context, s *catalog.Service) error { return nil }
func (r *stubServiceRepo) Delete(ctx context.Context, id string) error          { return nil }
func (r *stubServiceRepo) HasActiveBookings(ctx context.Context, id string) (bool, error) {
	return false, nil
}

type stubStaffRepo struct {
	staff map[string]*catalog.Staff
}

func (r *stubStaffRepo) Create(ctx context.Context, st *catalog.Staff) error { return nil }
func (r *stubStaffRepo) GetByID(ctx context.Context, id string) (*catalog.Staff, error) {
	st, ok := r.staff[id]
	if !ok {
		return nil, catalog.ErrStaffNotFound
	}
	return st, nil
}
func (r *stubStaffRepo) List(ctx context.Context, f catalog.StaffFilter) ([]*catalog.Staff, int, error) {
	return nil, 0, nil
}
func (r *stubStaffRepo) Update(ctx context.Context, st *catalog.Staff) error { return nil }
func (r *stubStaffRepo) Delete(ctx context.Context, id string) error         { return nil }

func newTestSlotService(repo Repository, notifier Notifier) Service {
	cat := catalog.NewManager(
		&stubServiceRepo{services: map[string]*catalog.Service{
			"svc-1": {ID: "svc-1", ProviderID: "p1", Name: "Haircut", DurationMinutes: 30},
		}},
		&stubStaffRepo{staff: map[string]*catalog.Staff{
			"staff-1": {ID: "staff-1", ProviderID: "p1", Name: "Alex"},
			"staff-2": {ID: "staff-2", ProviderID: "p2", Name: "Sam"},
		}},
	)
	return NewService(repo, cat, notifier, time.UTC)
}

func TestBulkGenerateCreatesAndSkips(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestSlotService(repo, &fakeNotifier{})
	ctx := context.Background()

	req := BulkGenerateRequest{
		ActorID:    "p1",
		ServiceID:  "svc-1",
		StartDate:  monday,
		EndDate:    monday,
		DaysOfWeek: []time.Weekday{time.Monday},
		DailyStart: TimeOfDay{Hour: 9},
		DailyEnd:   TimeOfDay{Hour: 11},
	}

	res, err := svc.BulkGenerate(ctx, req)
	require.NoError(t, err)
	assert.Len(t, res.Created, 4, "09:00-11:00 at 30 minutes")
	assert.Empty(t, res.Skipped)
	for _, s := range res.Created {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, StatusOpen, s.Status)
	}

	// Re-running the same request finds every candidate occupied.
	res, err = svc.BulkGenerate(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Len(t, res.Skipped, 4)

	// Partial overlap: a shifted window skips only the colliding
	// candidates.
	req.DailyStart = TimeOfDay{Hour: 10, Minute: 30}
	req.DailyEnd = TimeOfDay{Hour: 12}
	res, err = svc.BulkGenerate(ctx, req)
	require.NoError(t, err)
	assert.Len(t, res.Created, 2, "11:00 and 11:30 are free")
	assert.Len(t, res.Skipped, 1, "10:30 collides")
}

func TestBulkGenerateStaffScoping(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestSlotService(repo, &fakeNotifier{})
	ctx := context.Background()

	staff1 := "staff-1"
	req := BulkGenerateRequest{
		ActorID:    "p1",
		ServiceID:  "svc-1",
		StaffID:    &staff1,
		StartDate:  monday,
		EndDate:    monday,
		DaysOfWeek: []time.Weekday{time.Monday},
		DailyStart: TimeOfDay{Hour: 9},
		DailyEnd:   TimeOfDay{Hour: 10},
	}

	res, err := svc.BulkGenerate(ctx, req)
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)

	// Staff-less slots of the same service do not collide with staffed
	// ones.
	req.StaffID = nil
	res, err = svc.BulkGenerate(ctx, req)
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	assert.Empty(t, res.Skipped)

	// But the same staff member is double-booked.
	req.StaffID = &staff1
	res, err = svc.BulkGenerate(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Len(t, res.Skipped, 2)
}

func TestBulkGenerateRejections(t *testing.T) {
	svc := newTestSlotService(newFakeRepo(), &fakeNotifier{})
	ctx := context.Background()

	base := BulkGenerateRequest{
		ActorID:    "p1",
		ServiceID:  "svc-1",
		StartDate:  monday,
		EndDate:    monday,
		DaysOfWeek: []time.Weekday{time.Monday},
		DailyStart: TimeOfDay{Hour: 9},
		DailyEnd:   TimeOfDay{Hour: 11},
	}

	t.Run("unknown service", func(t *testing.T) {
		req := base
		req.ServiceID = "no-such-service"
		_, err := svc.BulkGenerate(ctx, req)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("not the service owner", func(t *testing.T) {
		req := base
		req.ActorID = "p2"
		_, err := svc.BulkGenerate(ctx, req)
		assert.True(t, errors.Is(err, ErrNotOwner))
	})

	t.Run("staff of another provider", func(t *testing.T) {
		req := base
		staff2 := "staff-2"
		req.StaffID = &staff2
		_, err := svc.BulkGenerate(ctx, req)
		assert.True(t, errors.Is(err, ErrStaffMismatch))
	})

	t.Run("inverted date range", func(t *testing.T) {
		req := base
		req.StartDate = monday.AddDate(0, 0, 7)
		_, err := svc.BulkGenerate(ctx, req)
		assert.True(t, errors.Is(err, ErrInvalidRange))
	})
}

func TestRetire(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := newTestSlotService(repo, notifier)
	ctx := context.Background()

	res, err := svc.BulkGenerate(ctx, BulkGenerateRequest{
		ActorID:    "p1",
		ServiceID:  "svc-1",
		StartDate:  monday,
		EndDate:    monday,
		DaysOfWeek: []time.Weekday{time.Monday},
		DailyStart: TimeOfDay{Hour: 9},
		DailyEnd:   TimeOfDay{Hour: 10},
	})
	require.NoError(t, err)
	require.Len(t, res.Created, 2)
	open, booked := res.Created[0], res.Created[1]

	t.Run("only the owner may retire", func(t *testing.T) {
		err := svc.Retire(ctx, open.ID, "p2")
		assert.True(t, errors.Is(err, ErrNotOwner))
	})

	t.Run("retiring an open slot notifies nobody", func(t *testing.T) {
		require.NoError(t, svc.Retire(ctx, open.ID, "p1"))
		got, err := svc.GetByID(ctx, open.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
		assert.Empty(t, notifier.retired)
	})

	t.Run("retiring a booked slot notifies the displaced client", func(t *testing.T) {
		repo.clientOnSlot[booked.ID] = "client-7"
		require.NoError(t, svc.Retire(ctx, booked.ID, "p1"))
		assert.Equal(t, []string{"client-7"}, notifier.retired)
	})

	t.Run("missing slot", func(t *testing.T) {
		err := svc.Retire(ctx, "no-such-slot", "p1")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
