package booking

import (
	"testing"

	"github.com/vvladislovv/buitifal/models"
)

func reservationAt(providerID, date string, start int, status models.ReservationStatus) models.Reservation {
	return models.Reservation{
		ID:         "r-" + models.ClockTime(start),
		ProviderID: providerID,
		Date:       date,
		Start:      start,
		End:        start + 30,
		Status:     status,
	}
}

func TestApplyReservationsBlocksActiveStatuses(t *testing.T) {
	slots := GenerateSlots("2025-03-10", "1", DefaultWorkingHours, 30)
	reservations := []models.Reservation{
		reservationAt("1", "2025-03-10", 600, models.StatusConfirmed),
		reservationAt("1", "2025-03-10", 660, models.StatusCompleted),
		reservationAt("1", "2025-03-10", 720, models.StatusCancelled),
	}

	got := ApplyReservations(slots, reservations)
	for _, s := range got {
		switch s.Start {
		case 600, 660:
			if s.Available {
				t.Errorf("slot %s should be blocked", s.StartClock())
			}
		default:
			if !s.Available {
				t.Errorf("slot %s should stay available", s.StartClock())
			}
		}
	}
}

func TestApplyReservationsIgnoresOtherProviderAndDate(t *testing.T) {
	slots := GenerateSlots("2025-03-10", "1", DefaultWorkingHours, 30)
	reservations := []models.Reservation{
		reservationAt("2", "2025-03-10", 600, models.StatusConfirmed),
		reservationAt("1", "2025-03-11", 600, models.StatusConfirmed),
	}

	for _, s := range ApplyReservations(slots, reservations) {
		if !s.Available {
			t.Errorf("slot %s blocked by an unrelated reservation", s.StartClock())
		}
	}
}

func TestApplyReservationsPure(t *testing.T) {
	slots := GenerateSlots("2025-03-10", "1", DefaultWorkingHours, 30)
	reservations := []models.Reservation{
		reservationAt("1", "2025-03-10", 600, models.StatusConfirmed),
	}

	_ = ApplyReservations(slots, reservations)
	for _, s := range slots {
		if !s.Available {
			t.Fatal("input slots must not be mutated")
		}
	}

	// Recomputing after a cancellation frees the slot again.
	reservations[0].Status = models.StatusCancelled
	for _, s := range ApplyReservations(slots, reservations) {
		if !s.Available {
			t.Fatalf("slot %s should be free after cancellation", s.StartClock())
		}
	}
}
