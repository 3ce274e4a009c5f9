package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	reservationRepo "github.com/vvladislovv/buitifal/database/repository/reservation"
	"github.com/vvladislovv/buitifal/models"
)

func confirmedAt(id, providerID, date string, start int) *models.Reservation {
	return &models.Reservation{
		ID:         id,
		ClientID:   "c1",
		ProviderID: providerID,
		Date:       date,
		Start:      start,
		End:        start + 30,
		Status:     models.StatusConfirmed,
	}
}

func TestInsertIfFreeConflict(t *testing.T) {
	repo := NewReservationRepo()
	ctx := context.Background()

	if err := repo.InsertIfFree(ctx, confirmedAt("r1", "1", "2025-03-10", 600)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := repo.InsertIfFree(ctx, confirmedAt("r2", "1", "2025-03-10", 600))
	if !errors.Is(err, reservationRepo.ErrSlotTaken) {
		t.Fatalf("want ErrSlotTaken, got %v", err)
	}

	// Other slots, dates and providers are unaffected.
	if err := repo.InsertIfFree(ctx, confirmedAt("r3", "1", "2025-03-10", 630)); err != nil {
		t.Errorf("adjacent slot: %v", err)
	}
	if err := repo.InsertIfFree(ctx, confirmedAt("r4", "1", "2025-03-11", 600)); err != nil {
		t.Errorf("other date: %v", err)
	}
	if err := repo.InsertIfFree(ctx, confirmedAt("r5", "2", "2025-03-10", 600)); err != nil {
		t.Errorf("other provider: %v", err)
	}
}

func TestInsertIfFreeAfterCancel(t *testing.T) {
	repo := NewReservationRepo()
	ctx := context.Background()

	if err := repo.InsertIfFree(ctx, confirmedAt("r1", "1", "2025-03-10", 600)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.UpdateStatus(ctx, "r1", models.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.InsertIfFree(ctx, confirmedAt("r2", "1", "2025-03-10", 600)); err != nil {
		t.Fatalf("cancelled reservation should not block the slot: %v", err)
	}
}

func TestInsertIfFreeConcurrent(t *testing.T) {
	repo := NewReservationRepo()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := confirmedAt("r", "1", "2025-03-10", 600)
			r.ID = r.ID + string(rune('a'+i))
			errs[i] = repo.InsertIfFree(ctx, r)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, reservationRepo.ErrSlotTaken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("want exactly one winner, got %d", wins)
	}
}

func TestMarkReminderSent(t *testing.T) {
	repo := NewReservationRepo()
	ctx := context.Background()

	if err := repo.MarkReminderSent(ctx, "missing"); !errors.Is(err, reservationRepo.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := repo.InsertIfFree(ctx, confirmedAt("r1", "1", "2025-03-10", 600)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.MarkReminderSent(ctx, "r1"); err != nil {
		t.Fatalf("MarkReminderSent: %v", err)
	}
	r, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !r.ReminderSent {
		t.Fatal("reminderSent flag not set")
	}
}
