// Package memory provides in-memory repository implementations. The engine
// tests run against them, and they back single-process deployments that have
// no MongoDB; the reservation repo serializes check-and-insert under one
// mutex, which satisfies the single-winner guarantee on slot commit.
package memory

import (
	"context"
	"sort"
	"sync"

	clientRepo "github.com/vvladislovv/buitifal/database/repository/client"
	reservationRepo "github.com/vvladislovv/buitifal/database/repository/reservation"
	"github.com/vvladislovv/buitifal/models"
)

// ReservationRepo is a mutex-guarded in-memory ReservationRepository.
type ReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]models.Reservation // keyed by reservation id
}

var _ reservationRepo.ReservationRepository = (*ReservationRepo)(nil)

func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{reservations: make(map[string]models.Reservation)}
}

func (r *ReservationRepo) FindByProviderDate(_ context.Context, providerID, date string) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Reservation
	for _, res := range r.reservations {
		if res.ProviderID == providerID && res.Date == date {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (r *ReservationRepo) InsertIfFree(_ context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reservations {
		if existing.ProviderID == res.ProviderID &&
			existing.Date == res.Date &&
			existing.Start == res.Start &&
			existing.Blocks() {
			return reservationRepo.ErrSlotTaken
		}
	}
	r.reservations[res.ID] = *res
	return nil
}

func (r *ReservationRepo) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	return &res, nil
}

func (r *ReservationRepo) UpdateStatus(_ context.Context, id string, status models.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return reservationRepo.ErrNotFound
	}
	res.Status = status
	r.reservations[id] = res
	return nil
}

func (r *ReservationRepo) MarkReminderSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return reservationRepo.ErrNotFound
	}
	res.ReminderSent = true
	r.reservations[id] = res
	return nil
}

func (r *ReservationRepo) ListByClient(_ context.Context, clientID string) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Reservation
	for _, res := range r.reservations {
		if res.ClientID == clientID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Start > out[j].Start
	})
	return out, nil
}

// ClientRepo is a mutex-guarded in-memory ClientRepository.
type ClientRepo struct {
	mu       sync.Mutex
	accounts map[string]models.ClientAccount
}

var _ clientRepo.ClientRepository = (*ClientRepo)(nil)

func NewClientRepo() *ClientRepo {
	return &ClientRepo{accounts: make(map[string]models.ClientAccount)}
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*models.ClientAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, clientRepo.ErrNotFound
	}
	return &acc, nil
}

func (r *ClientRepo) Upsert(_ context.Context, acc *models.ClientAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[acc.ID] = *acc
	return nil
}
