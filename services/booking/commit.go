package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reservationRepo "github.com/vvladislovv/buitifal/database/repository/reservation"
	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/utils"
)

// Confirm validates the client info and commits the session's reservation.
// The store is the single arbiter of slot ownership: when the insert loses
// the race, the session is sent back to slot selection with a refreshed menu.
func (s *DefaultBookingSessionService) Confirm(ctx context.Context, sessionID, clientName, clientPhone string) (*ConfirmResult, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepAwaitingConfirmation {
		return nil, NewStateError("cannot confirm at step %q", session.Step)
	}

	name := strings.TrimSpace(clientName)
	phone := digitsOnly(clientPhone)
	if name == "" || len(phone) != 11 {
		return nil, ErrInvalidClientInfo
	}

	now := s.now()
	reservation := &models.Reservation{
		ID:         uuid.New().String(),
		ClientID:   session.ClientID,
		ServiceID:  session.Service.ID,
		ProviderID: session.Provider.ID,
		Date:       session.Date,
		Start:      session.Slot.Start,
		End:        session.Slot.End,
		Price:      session.Service.Price,
		Status:     models.StatusConfirmed,
		CreatedAt:  now,
	}

	err = s.Reservations.InsertIfFree(ctx, reservation)
	if errors.Is(err, reservationRepo.ErrSlotTaken) {
		menu, menuErr := s.GetSlotMenu(ctx, session.Provider.ID, session.Date)
		if menuErr != nil {
			return nil, menuErr
		}
		session.SlotMenu = menu
		session.Slot = nil
		session.Step = models.StepSelectingSlot
		if saveErr := s.Sessions.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return nil, ErrSlotNoLongerAvailable
	}
	if err != nil {
		return nil, err
	}

	log := utils.GetLogger()
	log.Info("reservation committed",
		zap.String("reservationId", reservation.ID),
		zap.String("clientId", reservation.ClientID),
		zap.String("providerId", reservation.ProviderID),
		zap.String("date", reservation.Date),
		zap.String("start", models.ClockTime(reservation.Start)))

	result := &ConfirmResult{Reservation: reservation}

	// The reservation is committed; loyalty and scheduling failures degrade
	// to a warning instead of rolling it back.
	if s.Loyalty != nil {
		if _, lerr := s.Loyalty.ApplyCharge(ctx, session.ClientID, name, phone, reservation.Price); lerr != nil {
			log.Warn("loyalty charge failed after commit",
				zap.String("reservationId", reservation.ID),
				zap.Error(lerr))
			result.Warning = "reservation confirmed, but the loyalty update failed"
		}
	}
	if s.Scheduler != nil {
		if serr := s.Scheduler.ScheduleReservationTasks(ctx, reservation); serr != nil {
			log.Warn("failed to schedule reservation tasks",
				zap.String("reservationId", reservation.ID),
				zap.Error(serr))
			if result.Warning == "" {
				result.Warning = "reservation confirmed, but follow-up scheduling failed"
			}
		}
	}

	if derr := s.Sessions.Delete(ctx, sessionID); derr != nil {
		log.Warn("failed to delete completed booking session",
			zap.String("sessionId", sessionID),
			zap.Error(derr))
	}
	return result, nil
}

// CancelReservation moves a committed reservation to cancelled, freeing its
// slot for new bookings.
func (s *DefaultBookingSessionService) CancelReservation(ctx context.Context, reservationID string) error {
	r, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if r.Status == models.StatusCancelled {
		return nil
	}
	if r.Status == models.StatusCompleted {
		return NewStateError("completed reservation %q cannot be cancelled", reservationID)
	}
	if err := s.Reservations.UpdateStatus(ctx, reservationID, models.StatusCancelled); err != nil {
		return err
	}
	utils.GetLogger().Info("reservation cancelled",
		zap.String("reservationId", reservationID),
		zap.String("providerId", r.ProviderID),
		zap.String("date", r.Date))
	return nil
}

// ListClientReservations splits the client's reservations into upcoming
// (confirmed, starting in the future) and past (everything else), both
// ordered by start time, upcoming soonest first and past most recent first.
func (s *DefaultBookingSessionService) ListClientReservations(ctx context.Context, clientID string) (*ReservationHistory, error) {
	all, err := s.Reservations.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	history := &ReservationHistory{
		Upcoming: []models.Reservation{},
		Past:     []models.Reservation{},
	}
	for _, r := range all {
		start, terr := r.StartTime(time.Local)
		if terr == nil && r.Status == models.StatusConfirmed && start.After(now) {
			history.Upcoming = append(history.Upcoming, r)
		} else {
			history.Past = append(history.Past, r)
		}
	}
	sort.Slice(history.Upcoming, func(i, j int) bool {
		return reservationBefore(history.Upcoming[i], history.Upcoming[j])
	})
	sort.Slice(history.Past, func(i, j int) bool {
		return reservationBefore(history.Past[j], history.Past[i])
	})
	return history, nil
}

func reservationBefore(a, b models.Reservation) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.Start < b.Start
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
