package reservationRepo

import (
	"context"
	"errors"

	"github.com/vvladislovv/buitifal/models"
)

// ErrSlotTaken is returned by InsertIfFree when a non-cancelled reservation
// already holds the same (provider, date, start) slot.
var ErrSlotTaken = errors.New("slot already reserved")

// ErrNotFound is returned when no reservation matches the given id.
var ErrNotFound = errors.New("reservation not found")

// ReservationRepository defines methods for reservation data access.
type ReservationRepository interface {
	// FindByProviderDate retrieves all reservations of a provider on a date,
	// regardless of status.
	FindByProviderDate(ctx context.Context, providerID, date string) ([]models.Reservation, error)
	// InsertIfFree persists the reservation only if its slot is not held by a
	// non-cancelled reservation; otherwise it returns ErrSlotTaken. The check
	// and the insert are a single serialized operation.
	InsertIfFree(ctx context.Context, r *models.Reservation) error
	// GetByID retrieves a reservation by its id.
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// UpdateStatus moves a reservation to the given status.
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
	// MarkReminderSent sets the reminder-sent flag.
	MarkReminderSent(ctx context.Context, id string) error
	// ListByClient retrieves all reservations made by a client.
	ListByClient(ctx context.Context, clientID string) ([]models.Reservation, error)
}
