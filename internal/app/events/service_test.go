package events_test

import (
	"context"
	"errors"
	"testing"

	memeventrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/eventrepo"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/events"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

func seedEvent(t *testing.T, svc *events.Service, id, clubID int64, name string) {
	t.Helper()
	_, err := svc.CreateEvent(context.Background(), events.CreateEventInput{
		ID:          id,
		Name:        name,
		Date:        "2026-05-01",
		Time:        "18:00",
		Location:    "Main Hall",
		Description: "About " + name,
		ClubID:      clubID,
	})
	if err != nil {
		t.Fatalf("seed event %s: %v", name, err)
	}
}

func TestService_CreateEvent_Validation(t *testing.T) {
	t.Parallel()
	svc := events.NewService(memeventrepo.NewRepo())

	_, err := svc.CreateEvent(context.Background(), events.CreateEventInput{
		ID: 1, Name: "Fair", Date: "2026-05-01", Time: "18:00", Location: "Hall",
		Description: "", ClubID: 1,
	})
	var ae *events.Error
	if !errors.As(err, &ae) || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("err=%v", err)
	}

	_, err = svc.CreateEvent(context.Background(), events.CreateEventInput{
		ID: 0, Name: "Fair", Date: "d", Time: "t", Location: "l", Description: "x", ClubID: 1,
	})
	if !errors.As(err, &ae) || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("err=%v", err)
	}

	seedEvent(t, svc, 1, 1, "Fair")
	_, err = svc.CreateEvent(context.Background(), events.CreateEventInput{
		ID: 1, Name: "Other", Date: "d", Time: "t", Location: "l", Description: "x", ClubID: 1,
	})
	if !errors.As(err, &ae) || ae.Status != 409 || ae.Code != "ALREADY_EXISTS" {
		t.Fatalf("err=%v", err)
	}
}

func TestService_UpdateEvent_PartialFields(t *testing.T) {
	t.Parallel()
	svc := events.NewService(memeventrepo.NewRepo())
	seedEvent(t, svc, 1, 1, "Fair")

	got, err := svc.UpdateEvent(context.Background(), 1, events.UpdateEventInput{
		Location: events.Some("Room 201"),
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if got.Location != "Room 201" || got.Name != "Fair" || got.Date != "2026-05-01" {
		t.Fatalf("got=%+v", got)
	}

	_, err = svc.UpdateEvent(context.Background(), 1, events.UpdateEventInput{
		Name: events.Some("   "),
	})
	var ae *events.Error
	if !errors.As(err, &ae) || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("err=%v", err)
	}

	_, err = svc.UpdateEvent(context.Background(), 99, events.UpdateEventInput{})
	if !errors.As(err, &ae) || ae.Status != 404 {
		t.Fatalf("err=%v", err)
	}
}

func TestService_DeleteEvent(t *testing.T) {
	t.Parallel()
	svc := events.NewService(memeventrepo.NewRepo())
	seedEvent(t, svc, 1, 1, "Fair")

	if err := svc.DeleteEvent(context.Background(), 1); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	err := svc.DeleteEvent(context.Background(), 1)
	var ae *events.Error
	if !errors.As(err, &ae) || ae.Status != 404 {
		t.Fatalf("err=%v", err)
	}
	_, err = svc.GetEvent(context.Background(), 1)
	if !errors.As(err, &ae) || ae.Status != 404 {
		t.Fatalf("err=%v", err)
	}
}

func TestService_ListEvents_FilterAndSearch(t *testing.T) {
	t.Parallel()
	svc := events.NewService(memeventrepo.NewRepo())
	seedEvent(t, svc, 1, 1, "Spring Fair")
	seedEvent(t, svc, 2, 2, "Blitz Night")
	seedEvent(t, svc, 3, 1, "spring cleanup")

	out, err := svc.ListEvents(context.Background(), "spring", nil)
	if err != nil || len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("out=%+v err=%v", out, err)
	}

	club := domain.ClubID(1)
	out, err = svc.ListEvents(context.Background(), "", &club)
	if err != nil || len(out) != 2 {
		t.Fatalf("out=%+v err=%v", out, err)
	}

	out, err = svc.ListEvents(context.Background(), "blitz", &club)
	if err != nil || len(out) != 0 {
		t.Fatalf("out=%+v err=%v", out, err)
	}
}
