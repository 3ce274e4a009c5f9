package booking

import (
	"fmt"

	"github.com/vvladislovv/buitifal/models"
)

// ApplyReservations recomputes the availability of each slot against the
// given reservations: a slot is unavailable iff a non-cancelled reservation
// holds the same (provider, date, start). Pure: neither input is mutated.
// The blocking set is indexed once, so the pass is linear in
// len(slots) + len(reservations).
func ApplyReservations(slots []models.Slot, reservations []models.Reservation) []models.Slot {
	blocked := make(map[string]struct{}, len(reservations))
	for _, r := range reservations {
		if r.Blocks() {
			blocked[slotKey(r.ProviderID, r.Date, r.Start)] = struct{}{}
		}
	}

	out := make([]models.Slot, len(slots))
	for i, s := range slots {
		_, taken := blocked[slotKey(s.ProviderID, s.Date, s.Start)]
		s.Available = !taken
		out[i] = s
	}
	return out
}

func slotKey(providerID, date string, start int) string {
	return fmt.Sprintf("%s|%s|%d", providerID, date, start)
}
