package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vvladislovv/buitifal/database/repository/memory"
	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/services/catalog"
	"github.com/vvladislovv/buitifal/services/loyalty"
)

func newTestService() (*DefaultBookingSessionService, *memory.ReservationRepo, *memory.ClientRepo) {
	reservations := memory.NewReservationRepo()
	clients := memory.NewClientRepo()
	svc := &DefaultBookingSessionService{
		Catalog:      catalog.DefaultFeed(),
		Reservations: reservations,
		Loyalty:      &loyalty.DefaultLoyaltyService{Clients: clients},
		Sessions:     NewMemorySessionStore(),
		Now: func() time.Time {
			return time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
		},
	}
	return svc, reservations, clients
}

// advanceToConfirmation walks a fresh session through the whole flow up to
// awaiting_confirmation for the given selections.
func advanceToConfirmation(t *testing.T, svc *DefaultBookingSessionService, clientID, serviceID, providerID, date string, start int) *models.BookingSession {
	t.Helper()
	ctx := context.Background()

	session, err := svc.StartSession(ctx, clientID, "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.SelectService(ctx, session.SessionID, serviceID); err != nil {
		t.Fatalf("SelectService: %v", err)
	}
	if _, err := svc.SelectProvider(ctx, session.SessionID, providerID); err != nil {
		t.Fatalf("SelectProvider: %v", err)
	}
	if _, err := svc.SelectDate(ctx, session.SessionID, date); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	session, err = svc.SelectSlot(ctx, session.SessionID, start)
	if err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if session.Step != models.StepAwaitingConfirmation {
		t.Fatalf("expected step %q, got %q", models.StepAwaitingConfirmation, session.Step)
	}
	return session
}

func TestFullBookingFlow(t *testing.T) {
	svc, _, clients := newTestService()
	ctx := context.Background()

	session := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)

	result, err := svc.Confirm(ctx, session.SessionID, "Ivan", "79991234567")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if result.Warning != "" {
		t.Errorf("unexpected warning: %q", result.Warning)
	}

	r := result.Reservation
	if r.Status != models.StatusConfirmed {
		t.Errorf("status = %q, want %q", r.Status, models.StatusConfirmed)
	}
	if r.ProviderID != "4" || r.Date != "2025-03-10" || r.Start != 600 || r.End != 630 {
		t.Errorf("wrong reservation placement: %+v", r)
	}
	if r.Price != 1500 {
		t.Errorf("price = %d, want the haircut price 1500", r.Price)
	}
	if r.ClientID != "c1" {
		t.Errorf("clientId = %q, want c1", r.ClientID)
	}

	// The session is gone after commit.
	if _, err := svc.Sessions.Get(ctx, session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session should be deleted after commit, got err %v", err)
	}

	// Loyalty was credited and the client record stored.
	acc, err := clients.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("client account missing after commit: %v", err)
	}
	if acc.Points != 15 || acc.LifetimeSpend != 1500 {
		t.Errorf("loyalty state = %d points / %d spend, want 15 / 1500", acc.Points, acc.LifetimeSpend)
	}
	if acc.Name != "Ivan" || acc.Phone != "79991234567" {
		t.Errorf("client record not updated: %+v", acc)
	}

	// The committed slot is blocked in a fresh menu.
	menu, err := svc.GetSlotMenu(ctx, "4", "2025-03-10")
	if err != nil {
		t.Fatalf("GetSlotMenu: %v", err)
	}
	for _, s := range menu {
		if s.Start == 600 && s.Available {
			t.Error("committed slot should be unavailable")
		}
	}
}

func TestConfirmLostRace(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)
	second := advanceToConfirmation(t, svc, "c2", "1", "4", "2025-03-10", 600)

	if _, err := svc.Confirm(ctx, first.SessionID, "Ivan", "79991234567"); err != nil {
		t.Fatalf("first Confirm: %v", err)
	}

	_, err := svc.Confirm(ctx, second.SessionID, "Petr", "79997654321")
	if !errors.Is(err, ErrSlotNoLongerAvailable) {
		t.Fatalf("second Confirm should lose the slot, got %v", err)
	}

	// The loser is back at slot selection with a refreshed menu.
	session, err := svc.Sessions.Get(ctx, second.SessionID)
	if err != nil {
		t.Fatalf("loser session should survive: %v", err)
	}
	if session.Step != models.StepSelectingSlot {
		t.Errorf("loser step = %q, want %q", session.Step, models.StepSelectingSlot)
	}
	if session.Slot != nil {
		t.Error("loser slot selection should be cleared")
	}
	for _, s := range session.SlotMenu {
		if s.Start == 600 && s.Available {
			t.Error("refreshed menu should show the lost slot as unavailable")
		}
	}

	// Re-selecting a free slot recovers the flow.
	if _, err := svc.SelectSlot(ctx, second.SessionID, 630); err != nil {
		t.Fatalf("re-select after lost race: %v", err)
	}
	if _, err := svc.Confirm(ctx, second.SessionID, "Petr", "79997654321"); err != nil {
		t.Fatalf("Confirm after re-select: %v", err)
	}
}

func TestConfirmConcurrentSingleWinner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	const n = 8
	sessions := make([]*models.BookingSession, n)
	for i := range sessions {
		sessions[i] = advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Confirm(ctx, sessions[i].SessionID, "Ivan", "79991234567")
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotNoLongerAvailable):
			losses++
		default:
			t.Fatalf("unexpected confirm error: %v", err)
		}
	}
	if wins != 1 || losses != n-1 {
		t.Fatalf("want exactly 1 winner and %d losers, got %d / %d", n-1, wins, losses)
	}
}

func TestConfirmInvalidClientInfo(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)

	cases := []struct {
		name, phone string
	}{
		{"", "79991234567"},
		{"   ", "79991234567"},
		{"Ivan", "7999123456"},   // 10 digits
		{"Ivan", "779991234567"}, // 12 digits
		{"Ivan", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Confirm(ctx, session.SessionID, tc.name, tc.phone); !errors.Is(err, ErrInvalidClientInfo) {
			t.Errorf("Confirm(%q, %q) = %v, want ErrInvalidClientInfo", tc.name, tc.phone, err)
		}
	}

	// The session stays at confirmation and a valid retry succeeds.
	got, err := svc.Sessions.Get(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if got.Step != models.StepAwaitingConfirmation {
		t.Fatalf("step after rejected confirm = %q, want awaiting_confirmation", got.Step)
	}
	if _, err := svc.Confirm(ctx, session.SessionID, "Ivan", "+7 (999) 123-45-67"); err != nil {
		t.Fatalf("formatted phone with 11 digits should pass: %v", err)
	}
}

func TestSelectProviderMustBeOffered(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "c1", "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	// Coloring is only offered by Maxim (id 3).
	if _, err := svc.SelectService(ctx, session.SessionID, "6"); err != nil {
		t.Fatalf("SelectService: %v", err)
	}
	if _, err := svc.SelectProvider(ctx, session.SessionID, "4"); Code(err) != CodeStateError {
		t.Fatalf("provider outside the offered set should be a state error, got %v", err)
	}
	if _, err := svc.SelectProvider(ctx, session.SessionID, "3"); err != nil {
		t.Fatalf("offered provider rejected: %v", err)
	}
}

func TestPreferredProviderSkipsSelection(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Ivan (id 4) covers haircuts.
	session, err := svc.StartSession(ctx, "c1", "4")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	session, err = svc.SelectService(ctx, session.SessionID, "1")
	if err != nil {
		t.Fatalf("SelectService: %v", err)
	}
	if session.Step != models.StepSelectingDate {
		t.Fatalf("compatible preselect should skip to date selection, got %q", session.Step)
	}
	if session.Provider == nil || session.Provider.ID != "4" {
		t.Fatalf("provider should be the preselected one, got %+v", session.Provider)
	}
}

func TestPreferredProviderIncompatibleDiscarded(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Ivan (id 4) does not do coloring.
	session, err := svc.StartSession(ctx, "c1", "4")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	session, err = svc.SelectService(ctx, session.SessionID, "6")
	if err != nil {
		t.Fatalf("SelectService: %v", err)
	}
	if session.Step != models.StepSelectingProvider {
		t.Fatalf("incompatible preselect should fall back to provider selection, got %q", session.Step)
	}
	if session.PreferredProviderID != "" {
		t.Error("incompatible preselect should be discarded")
	}
	for _, p := range session.OfferedProviders {
		if p.ID == "4" {
			t.Error("offered providers should not include the incompatible one")
		}
	}
}

func TestNoProviderAvailable(t *testing.T) {
	feed := catalog.NewStaticFeed(
		[]models.ServiceOffering{{ID: "s1", Name: "Hot stone massage", Price: 2000, DurationMin: 60, Category: "massage"}},
		[]models.Provider{{ID: "p1", Name: "Alexey", Categories: []string{"haircut"}}},
	)
	svc, _, _ := newTestService()
	svc.Catalog = feed
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "c1", "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.SelectService(ctx, session.SessionID, "s1"); !errors.Is(err, ErrNoProviderAvailable) {
		t.Fatalf("want ErrNoProviderAvailable, got %v", err)
	}

	// The session is untouched and another service can still be chosen.
	got, err := svc.Sessions.Get(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if got.Step != models.StepSelectingService || got.Service != nil {
		t.Fatalf("session should remain at service selection, got %+v", got)
	}
}

func TestSelectSlotRejectsUnavailable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Book 10:00 with one client, then try to pick it with another.
	first := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)
	if _, err := svc.Confirm(ctx, first.SessionID, "Ivan", "79991234567"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	session, err := svc.StartSession(ctx, "c2", "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.SelectService(ctx, session.SessionID, "1"); err != nil {
		t.Fatalf("SelectService: %v", err)
	}
	if _, err := svc.SelectProvider(ctx, session.SessionID, "4"); err != nil {
		t.Fatalf("SelectProvider: %v", err)
	}
	if _, err := svc.SelectDate(ctx, session.SessionID, "2025-03-10"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}

	if _, err := svc.SelectSlot(ctx, session.SessionID, 600); Code(err) != CodeStateError {
		t.Fatalf("taken slot should be rejected as a state error, got %v", err)
	}
	got, err := svc.Sessions.Get(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if got.Step != models.StepSelectingSlot || got.Slot != nil {
		t.Fatalf("rejected slot pick should not advance the session, got step %q", got.Step)
	}
}

func TestBackRetainsEarlierSelections(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)

	// awaiting_confirmation -> selecting_slot: date and menu survive.
	session, err := svc.Back(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if session.Step != models.StepSelectingSlot {
		t.Fatalf("step = %q, want selecting_slot", session.Step)
	}
	if session.Slot != nil {
		t.Error("slot choice should be cleared")
	}
	if session.Date != "2025-03-10" || len(session.SlotMenu) == 0 {
		t.Error("date and slot menu should be retained when leaving confirmation")
	}

	// selecting_slot -> selecting_date: date cleared, provider retained.
	session, err = svc.Back(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if session.Step != models.StepSelectingDate {
		t.Fatalf("step = %q, want selecting_date", session.Step)
	}
	if session.Date != "" || session.SlotMenu != nil {
		t.Error("date and menu should be cleared when leaving slot selection")
	}
	if session.Provider == nil || session.Provider.ID != "4" {
		t.Error("provider should be retained when leaving slot selection")
	}

	// selecting_date -> selecting_provider: provider cleared, service retained.
	session, err = svc.Back(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if session.Step != models.StepSelectingProvider {
		t.Fatalf("step = %q, want selecting_provider", session.Step)
	}
	if session.Provider != nil {
		t.Error("provider should be cleared when leaving date selection")
	}
	if session.Service == nil || session.Service.ID != "1" {
		t.Error("service should be retained when leaving date selection")
	}
	if len(session.OfferedProviders) == 0 {
		t.Error("offered providers should be recomputed for the retained service")
	}

	// selecting_provider -> selecting_service -> error at the first step.
	session, err = svc.Back(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if session.Step != models.StepSelectingService {
		t.Fatalf("step = %q, want selecting_service", session.Step)
	}
	if _, err := svc.Back(ctx, session.SessionID); Code(err) != CodeStateError {
		t.Fatalf("Back at the first step should be a state error, got %v", err)
	}
}

func TestStepOrderEnforced(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "c1", "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if _, err := svc.SelectDate(ctx, session.SessionID, "2025-03-10"); Code(err) != CodeStateError {
		t.Errorf("date before service should be a state error, got %v", err)
	}
	if _, err := svc.SelectSlot(ctx, session.SessionID, 600); Code(err) != CodeStateError {
		t.Errorf("slot before service should be a state error, got %v", err)
	}
	if _, err := svc.Confirm(ctx, session.SessionID, "Ivan", "79991234567"); Code(err) != CodeStateError {
		t.Errorf("confirm before service should be a state error, got %v", err)
	}
}

func TestSessionNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SelectService(ctx, "missing", "1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}

	session, err := svc.StartSession(ctx, "c1", "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := svc.CancelSession(ctx, session.SessionID); err != nil {
		t.Fatalf("CancelSession: %v", err)
	}
	if _, err := svc.SelectService(ctx, session.SessionID, "1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("cancelled session should be gone, got %v", err)
	}
}

func TestCancelReservationFreesSlot(t *testing.T) {
	svc, reservations, _ := newTestService()
	ctx := context.Background()

	session := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)
	result, err := svc.Confirm(ctx, session.SessionID, "Ivan", "79991234567")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if err := svc.CancelReservation(ctx, result.Reservation.ID); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	r, err := reservations.GetByID(ctx, result.Reservation.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if r.Status != models.StatusCancelled {
		t.Fatalf("status = %q, want cancelled", r.Status)
	}

	menu, err := svc.GetSlotMenu(ctx, "4", "2025-03-10")
	if err != nil {
		t.Fatalf("GetSlotMenu: %v", err)
	}
	for _, s := range menu {
		if s.Start == 600 && !s.Available {
			t.Fatal("cancelled reservation should free its slot")
		}
	}

	// Cancelling twice is a no-op; completed reservations cannot be cancelled.
	if err := svc.CancelReservation(ctx, r.ID); err != nil {
		t.Fatalf("second cancel should be a no-op: %v", err)
	}
}

func TestListClientReservationsSplit(t *testing.T) {
	svc, reservations, _ := newTestService()
	ctx := context.Background()

	// Upcoming relative to the fixed clock (2025-03-01 12:00).
	session := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)
	upcoming, err := svc.Confirm(ctx, session.SessionID, "Ivan", "79991234567")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	past := models.Reservation{
		ID: "past-1", ClientID: "c1", ServiceID: "2", ProviderID: "1",
		Date: "2025-02-20", Start: 660, End: 690, Price: 800,
		Status: models.StatusCompleted,
	}
	if err := reservations.InsertIfFree(ctx, &past); err != nil {
		t.Fatalf("insert past reservation: %v", err)
	}

	history, err := svc.ListClientReservations(ctx, "c1")
	if err != nil {
		t.Fatalf("ListClientReservations: %v", err)
	}
	if len(history.Upcoming) != 1 || history.Upcoming[0].ID != upcoming.Reservation.ID {
		t.Fatalf("upcoming = %+v, want the confirmed future visit", history.Upcoming)
	}
	if len(history.Past) != 1 || history.Past[0].ID != "past-1" {
		t.Fatalf("past = %+v, want the completed visit", history.Past)
	}
}

// failingLoyalty always rejects the charge.
type failingLoyalty struct{}

func (failingLoyalty) ApplyCharge(context.Context, string, string, string, int) (*models.ClientAccount, error) {
	return nil, errors.New("ledger unavailable")
}

func (failingLoyalty) Summary(context.Context, string) (*models.LoyaltySummary, error) {
	return nil, errors.New("ledger unavailable")
}

func TestConfirmLoyaltyFailureIsWarning(t *testing.T) {
	svc, reservations, _ := newTestService()
	svc.Loyalty = failingLoyalty{}
	ctx := context.Background()

	session := advanceToConfirmation(t, svc, "c1", "1", "4", "2025-03-10", 600)
	result, err := svc.Confirm(ctx, session.SessionID, "Ivan", "79991234567")
	if err != nil {
		t.Fatalf("loyalty failure must not fail the commit: %v", err)
	}
	if result.Warning == "" {
		t.Fatal("expected a warning for the failed loyalty update")
	}
	if _, err := reservations.GetByID(ctx, result.Reservation.ID); err != nil {
		t.Fatalf("reservation should be persisted despite the warning: %v", err)
	}
}
