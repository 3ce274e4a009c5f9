package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/utils"
)

// StartSession opens a new booking session at service selection and stores it.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, clientID, preferredProviderID string) (*models.BookingSession, error) {
	if clientID == "" {
		return nil, NewStateError("client id is required to start a booking session")
	}

	// An unknown preferred provider is dropped up front; the normal flow
	// covers the rest.
	if preferredProviderID != "" {
		if _, ok := s.Catalog.ProviderByID(preferredProviderID); !ok {
			utils.GetLogger().Debug("dropping unknown preferred provider",
				zap.String("providerId", preferredProviderID))
			preferredProviderID = ""
		}
	}

	session := &models.BookingSession{
		SessionID:           uuid.New().String(),
		ClientID:            clientID,
		Step:                models.StepSelectingService,
		PreferredProviderID: preferredProviderID,
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectService records the chosen service. A compatible preferred provider
// lets the session skip provider selection; an incompatible one is discarded.
func (s *DefaultBookingSessionService) SelectService(ctx context.Context, sessionID, serviceID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSelectingService {
		return nil, NewStateError("cannot select a service at step %q", session.Step)
	}

	svc, ok := s.Catalog.ServiceByID(serviceID)
	if !ok {
		return nil, NewStateError("unknown service %q", serviceID)
	}

	if session.PreferredProviderID != "" {
		p, ok := s.Catalog.ProviderByID(session.PreferredProviderID)
		if ok && p.Covers(svc.Category) {
			session.Service = svc
			session.Provider = p
			session.Step = models.StepSelectingDate
			if err := s.Sessions.Save(ctx, session); err != nil {
				return nil, err
			}
			return session, nil
		}
		// Incompatible with the chosen service: discard and resume the
		// normal path.
		session.PreferredProviderID = ""
	}

	offered := s.Catalog.ProvidersByCategory(svc.Category)
	if len(offered) == 0 {
		return nil, ErrNoProviderAvailable
	}

	session.Service = svc
	session.OfferedProviders = offered
	session.Step = models.StepSelectingProvider
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectProvider records the chosen provider from the offered set.
func (s *DefaultBookingSessionService) SelectProvider(ctx context.Context, sessionID, providerID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSelectingProvider {
		return nil, NewStateError("cannot select a provider at step %q", session.Step)
	}

	var chosen *models.Provider
	for i := range session.OfferedProviders {
		if session.OfferedProviders[i].ID == providerID {
			chosen = &session.OfferedProviders[i]
			break
		}
	}
	if chosen == nil {
		return nil, NewStateError("provider %q is not offered for service %q", providerID, session.Service.ID)
	}

	session.Provider = chosen
	session.Step = models.StepSelectingDate
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectDate records the chosen date and computes the slot menu for it.
func (s *DefaultBookingSessionService) SelectDate(ctx context.Context, sessionID, date string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSelectingDate {
		return nil, NewStateError("cannot select a date at step %q", session.Step)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, NewStateError("invalid date %q, expected YYYY-MM-DD", date)
	}

	menu, err := s.GetSlotMenu(ctx, session.Provider.ID, date)
	if err != nil {
		// Store failure: the session stays at date selection, resumable.
		return nil, err
	}

	session.Date = date
	session.SlotMenu = menu
	session.Slot = nil
	session.Step = models.StepSelectingSlot
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectSlot records the chosen slot. Picking an unavailable or unknown slot
// does not advance the session.
func (s *DefaultBookingSessionService) SelectSlot(ctx context.Context, sessionID string, start int) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSelectingSlot {
		return nil, NewStateError("cannot select a slot at step %q", session.Step)
	}

	var chosen *models.Slot
	for i := range session.SlotMenu {
		if session.SlotMenu[i].Start == start {
			chosen = &session.SlotMenu[i]
			break
		}
	}
	if chosen == nil {
		return nil, NewStateError("no slot starts at %s on %s", models.ClockTime(start), session.Date)
	}
	if !chosen.Available {
		return nil, NewStateError("slot %s on %s is not available", chosen.StartClock(), session.Date)
	}

	slot := *chosen
	session.Slot = &slot
	session.Step = models.StepAwaitingConfirmation
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves the session to the previous step. Selections made at and after
// the step being left are cleared; earlier ones stay as prefill (leaving slot
// selection keeps the chosen date).
func (s *DefaultBookingSessionService) Back(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case models.StepSelectingService:
		return nil, NewStateError("already at the first step")
	case models.StepSelectingProvider:
		session.Provider = nil
		session.OfferedProviders = nil
		session.Step = models.StepSelectingService
	case models.StepSelectingDate:
		session.Date = ""
		session.Provider = nil
		if session.Service != nil {
			session.OfferedProviders = s.Catalog.ProvidersByCategory(session.Service.Category)
		}
		session.Step = models.StepSelectingProvider
	case models.StepSelectingSlot:
		session.Slot = nil
		session.SlotMenu = nil
		session.Step = models.StepSelectingDate
	case models.StepAwaitingConfirmation:
		session.Slot = nil
		session.Step = models.StepSelectingSlot
	default:
		return nil, NewStateError("cannot go back from step %q", session.Step)
	}

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession abandons an in-flight booking attempt.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

// GetSlotMenu generates the provider's slots for the date and recomputes
// their availability against the store.
func (s *DefaultBookingSessionService) GetSlotMenu(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	slots := GenerateSlots(date, providerID, s.hours(), s.slotMinutes())
	existing, err := s.Reservations.FindByProviderDate(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for slot menu: %w", err)
	}
	return ApplyReservations(slots, existing), nil
}
