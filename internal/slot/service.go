package slot

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/slotwise/appointment-backend/internal/catalog"
)

// Notifier is invoked when retiring a slot cancels a live booking.
type Notifier interface {
	SlotRetired(ctx context.Context, clientID string, startAt time.Time) error
}

// BulkGenerateRequest describes one bulk slot creation call. The slot
// duration is taken from the referenced service.
type BulkGenerateRequest struct {
	ActorID    string
	ServiceID  string
	StaffID    *string
	StartDate  time.Time
	EndDate    time.Time
	DaysOfWeek []time.Weekday
	DailyStart TimeOfDay
	DailyEnd   TimeOfDay
}

// BulkResult reports the per-candidate outcome of a bulk generation:
// creation is best-effort per slot, overlapping candidates are skipped
// individually and returned for operator feedback.
type BulkResult struct {
	Created []*Slot
	Skipped []Interval
}

type Service interface {
	BulkGenerate(ctx context.Context, req BulkGenerateRequest) (*BulkResult, error)
	GetByID(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)

	// Retire cancels a slot permanently, from open or booked state. A
	// live booking on the slot is cancelled and its client notified.
	Retire(ctx context.Context, id, actorID string) error
}

type service struct {
	repo     Repository
	catalog  *catalog.Manager
	notifier Notifier
	loc      *time.Location
}

func NewService(repo Repository, cat *catalog.Manager, notifier Notifier, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:     repo,
		catalog:  cat,
		notifier: notifier,
		loc:      loc,
	}
}

func (s *service) BulkGenerate(ctx context.Context, req BulkGenerateRequest) (*BulkResult, error) {
	svc, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}
	if svc.ProviderID != req.ActorID {
		return nil, ErrNotOwner
	}

	if req.StaffID != nil {
		st, err := s.catalog.GetStaff(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, catalog.ErrStaffNotFound) {
				return nil, ErrInvalidInput
			}
			return nil, err
		}
		if st.ProviderID != svc.ProviderID {
			return nil, ErrStaffMismatch
		}
	}

	intervals, err := Generate(GenerateParams{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		DaysOfWeek:      req.DaysOfWeek,
		DailyStart:      req.DailyStart,
		DailyEnd:        req.DailyEnd,
		DurationMinutes: svc.DurationMinutes,
		Location:        s.loc,
	})
	if err != nil {
		return nil, err
	}

	result := &BulkResult{}
	for _, iv := range intervals {
		candidate := &Slot{
			ServiceID: req.ServiceID,
			StaffID:   req.StaffID,
			StartAt:   iv.Start,
			EndAt:     iv.End,
		}
		created, err := s.repo.CreateIfFree(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if created {
			result.Created = append(result.Created, candidate)
		} else {
			result.Skipped = append(result.Skipped, iv)
		}
	}

	return result, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Slot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Retire(ctx context.Context, id, actorID string) error {
	sl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	svc, err := s.catalog.GetService(ctx, sl.ServiceID)
	if err != nil {
		return err
	}
	if svc.ProviderID != actorID {
		return ErrNotOwner
	}

	clientID, err := s.repo.Retire(ctx, id)
	if err != nil {
		return err
	}

	// Best effort: the retirement has committed, a failed notification
	// must not undo it.
	if clientID != nil && s.notifier != nil {
		if err := s.notifier.SlotRetired(ctx, *clientID, sl.StartAt); err != nil {
			log.Printf("failed to notify client %s of retired slot %s: %v", *clientID, id, err)
		}
	}

	return nil
}
