package models

import "fmt"

// Slot is a bookable interval of a provider's working day. Slots are computed
// on demand and never persisted; two slots are the same iff provider, date and
// start match.
type Slot struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`  // "YYYY-MM-DD"
	Start      int    `json:"start"` // minutes from midnight (e.g. 600 for 10:00)
	End        int    `json:"end"`   // minutes from midnight
	Available  bool   `json:"available"`
}

// StartClock renders the start time as "HH:MM".
func (s Slot) StartClock() string { return ClockTime(s.Start) }

// EndClock renders the end time as "HH:MM".
func (s Slot) EndClock() string { return ClockTime(s.End) }

// ClockTime formats minutes from midnight as "HH:MM".
func ClockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
