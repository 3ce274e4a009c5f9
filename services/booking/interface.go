package booking

import (
	"context"
	"time"

	reservationRepo "github.com/vvladislovv/buitifal/database/repository/reservation"
	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/services/catalog"
	"github.com/vvladislovv/buitifal/services/loyalty"
)

// BookingSessionService drives a booking attempt through its steps and owns
// the committed-reservation operations built on top of the store.
type BookingSessionService interface {
	// StartSession opens a new session at service selection. A provider may
	// be preferred up front (deep link); it is honored later only if
	// compatible with the chosen service.
	StartSession(ctx context.Context, clientID, preferredProviderID string) (*models.BookingSession, error)
	// SelectService records the service choice and moves to provider
	// selection, or straight to date selection when a compatible provider was
	// preferred.
	SelectService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error)
	// SelectProvider records the provider choice; only providers offered for
	// the selected service's category are accepted.
	SelectProvider(ctx context.Context, sessionID, providerID string) (*models.BookingSession, error)
	// SelectDate records the date and computes the slot menu.
	SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error)
	// SelectSlot records the slot choice; an unavailable slot is rejected
	// without advancing.
	SelectSlot(ctx context.Context, sessionID string, start int) (*models.BookingSession, error)
	// Back returns the session to the previous step, clearing the selections
	// made at and after the step being left.
	Back(ctx context.Context, sessionID string) (*models.BookingSession, error)
	// Confirm validates the client info and commits the reservation. On a
	// lost slot race the session returns to slot selection with a refreshed
	// menu and ErrSlotNoLongerAvailable is reported.
	Confirm(ctx context.Context, sessionID, clientName, clientPhone string) (*ConfirmResult, error)
	// CancelSession abandons an in-flight session. No persisted side effects.
	CancelSession(ctx context.Context, sessionID string) error

	// GetSlotMenu computes the slot menu for a provider/date against the
	// current store state.
	GetSlotMenu(ctx context.Context, providerID, date string) ([]models.Slot, error)
	// CancelReservation cancels a committed reservation, freeing its slot.
	CancelReservation(ctx context.Context, reservationID string) error
	// ListClientReservations returns the client's history split into
	// upcoming and past.
	ListClientReservations(ctx context.Context, clientID string) (*ReservationHistory, error)
}

// ConfirmResult is the outcome of a successful commit. Warning carries
// non-fatal follow-up failures (loyalty update, task scheduling); the
// reservation itself is never rolled back for those.
type ConfirmResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Warning     string              `json:"warning,omitempty"`
}

// ReservationHistory is a client's reservations split the way the history
// screen shows them: confirmed future visits first, everything else after.
type ReservationHistory struct {
	Upcoming []models.Reservation `json:"upcoming"`
	Past     []models.Reservation `json:"past"`
}

// TaskScheduler enqueues the scheduled follow-ups of a committed reservation
// (reminder flag, completion transition). Scheduling failures are non-fatal.
type TaskScheduler interface {
	ScheduleReservationTasks(ctx context.Context, r *models.Reservation) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Catalog      catalog.Feed
	Reservations reservationRepo.ReservationRepository
	Loyalty      loyalty.Service
	Sessions     SessionStore
	Scheduler    TaskScheduler // optional; nil skips task scheduling

	Hours       WorkingHours
	SlotMinutes int

	// Now is the clock used for timestamps and the upcoming/past split.
	// Defaults to time.Now when nil.
	Now func() time.Time
}

var _ BookingSessionService = (*DefaultBookingSessionService)(nil)

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingSessionService) hours() WorkingHours {
	if s.Hours == (WorkingHours{}) {
		return DefaultWorkingHours
	}
	return s.Hours
}

func (s *DefaultBookingSessionService) slotMinutes() int {
	if s.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return s.SlotMinutes
}
