package events

import (
	"context"
	"errors"
	"strings"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/eventrepo"
)

type Service struct {
	events eventrepo.Repository
}

func NewService(events eventrepo.Repository) *Service {
	return &Service{events: events}
}

func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	if in.ID <= 0 {
		return domain.Event{}, validationErr("eventID", "must be a positive integer")
	}
	if in.ClubID <= 0 {
		return domain.Event{}, validationErr("clubID", "must be a positive integer")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" ||
		strings.TrimSpace(in.Date) == "" ||
		strings.TrimSpace(in.Time) == "" ||
		strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Description) == "" {
		return domain.Event{}, validationErr("event", "name, date, time, location and description are required")
	}

	e := eventrepo.Event{
		ID:          domain.EventID(in.ID),
		Name:        name,
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		ClubID:      domain.ClubID(in.ClubID),
	}
	if err := s.events.Create(ctx, e); err != nil {
		if errors.Is(err, eventrepo.ErrAlreadyExists) {
			return domain.Event{}, &Error{
				Status:  409,
				Code:    "ALREADY_EXISTS",
				Message: "event already exists",
			}
		}
		return domain.Event{}, err
	}
	return toDomain(e), nil
}

func (s *Service) UpdateEvent(ctx context.Context, id domain.EventID, in UpdateEventInput) (domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventrepo.ErrNotFound) {
			return domain.Event{}, eventNotFound()
		}
		return domain.Event{}, err
	}

	apply := func(field string, opt Optional[string], dst *string) error {
		if !opt.IsSpecified() {
			return nil
		}
		if opt.IsNull() || strings.TrimSpace(opt.Value()) == "" {
			return validationErr(field, "must be non-empty")
		}
		*dst = strings.TrimSpace(opt.Value())
		return nil
	}
	if err := apply("eventName", in.Name, &e.Name); err != nil {
		return domain.Event{}, err
	}
	if err := apply("date", in.Date, &e.Date); err != nil {
		return domain.Event{}, err
	}
	if err := apply("time", in.Time, &e.Time); err != nil {
		return domain.Event{}, err
	}
	if err := apply("location", in.Location, &e.Location); err != nil {
		return domain.Event{}, err
	}
	if err := apply("description", in.Description, &e.Description); err != nil {
		return domain.Event{}, err
	}

	if err := s.events.Update(ctx, e); err != nil {
		if errors.Is(err, eventrepo.ErrNotFound) {
			return domain.Event{}, eventNotFound()
		}
		return domain.Event{}, err
	}
	return toDomain(e), nil
}

func (s *Service) DeleteEvent(ctx context.Context, id domain.EventID) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, eventrepo.ErrNotFound) {
			return eventNotFound()
		}
		return err
	}
	return nil
}

func (s *Service) GetEvent(ctx context.Context, id domain.EventID) (domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventrepo.ErrNotFound) {
			return domain.Event{}, eventNotFound()
		}
		return domain.Event{}, err
	}
	return toDomain(e), nil
}

// ListEvents filters by case-insensitive name substring and, when clubID is
// non-nil, by hosting club.
func (s *Service) ListEvents(ctx context.Context, query string, clubID *domain.ClubID) ([]domain.Event, error) {
	es, err := s.events.Search(ctx, strings.TrimSpace(query), clubID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(es))
	for _, e := range es {
		out = append(out, toDomain(e))
	}
	return out, nil
}

func eventNotFound() *Error {
	return &Error{Status: 404, Code: "NOT_FOUND", Message: "event not found"}
}

func validationErr(field, msg string) *Error {
	return &Error{
		Status:  422,
		Code:    "VALIDATION_ERROR",
		Message: "invalid " + field,
		Details: map[string]any{field: msg},
	}
}

func toDomain(e eventrepo.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		ClubID:      e.ClubID,
	}
}
