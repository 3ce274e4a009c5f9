package models

import (
	"fmt"
	"time"
)

// ReservationStatus is the persisted lifecycle state of a reservation.
// There is no stored "pending": a booking attempt lives only in its session
// until it is committed as confirmed.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a committed booking of one slot.
type Reservation struct {
	ID           string            `bson:"id" json:"id"`
	ClientID     string            `bson:"clientId" json:"clientId"`
	ServiceID    string            `bson:"serviceId" json:"serviceId"`
	ProviderID   string            `bson:"providerId" json:"providerId"`
	Date         string            `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start        int               `bson:"start" json:"start"` // minutes from midnight
	End          int               `bson:"end" json:"end"`
	Price        int               `bson:"price" json:"price"` // service price at commit time, minor units
	Status       ReservationStatus `bson:"status" json:"status"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
	ReminderSent bool              `bson:"reminderSent" json:"reminderSent"`
}

// Blocks reports whether the reservation occupies its slot. Cancelled
// reservations never block.
func (r Reservation) Blocks() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCompleted
}

// StartTime resolves the reservation's start as wall-clock time in loc.
func (r Reservation) StartTime(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", r.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reservation date %q: %w", r.Date, err)
	}
	return day.Add(time.Duration(r.Start) * time.Minute), nil
}

// EndTime resolves the reservation's end as wall-clock time in loc.
func (r Reservation) EndTime(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", r.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reservation date %q: %w", r.Date, err)
	}
	return day.Add(time.Duration(r.End) * time.Minute), nil
}
