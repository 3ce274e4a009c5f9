package booking

import "github.com/vvladislovv/buitifal/models"

// WorkingHours is a provider's working window, half-open [Start, End) in
// whole hours.
type WorkingHours struct {
	StartHour int
	EndHour   int
}

// DefaultWorkingHours is the salon's standard 9:00-21:00 day.
var DefaultWorkingHours = WorkingHours{StartHour: 9, EndHour: 21}

// DefaultSlotMinutes is the standard slot length. It must divide 60 evenly.
const DefaultSlotMinutes = 30

// GenerateSlots tiles the working window of one provider/date into
// fixed-length slots, ordered by start time, all initially available. It is
// pure: identical inputs always yield an identical sequence. An empty window
// (start >= end) or an invalid slot length yields an empty sequence, not an
// error.
func GenerateSlots(date, providerID string, hours WorkingHours, slotMinutes int) []models.Slot {
	if slotMinutes <= 0 || 60%slotMinutes != 0 {
		return nil
	}

	var slots []models.Slot
	for start := hours.StartHour * 60; start < hours.EndHour*60; start += slotMinutes {
		slots = append(slots, models.Slot{
			ProviderID: providerID,
			Date:       date,
			Start:      start,
			End:        start + slotMinutes,
			Available:  true,
		})
	}
	return slots
}
