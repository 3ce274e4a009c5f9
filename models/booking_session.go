package models

// BookingStep is the wizard step a booking session is currently at. A session
// only committed at the end of the flow turns into a Reservation; abandoning
// it at any step persists nothing.
type BookingStep string

const (
	StepSelectingService     BookingStep = "selecting_service"
	StepSelectingProvider    BookingStep = "selecting_provider"
	StepSelectingDate        BookingStep = "selecting_date"
	StepSelectingSlot        BookingStep = "selecting_slot"
	StepAwaitingConfirmation BookingStep = "awaiting_confirmation"
)

// BookingSession holds the in-flight state of one booking attempt between
// steps. Fields are populated as the client advances; navigating back clears
// the selections made at and after the step being left.
type BookingSession struct {
	SessionID string      `json:"sessionId"`
	ClientID  string      `json:"clientId"`
	Step      BookingStep `json:"step"`

	// PreferredProviderID is a provider chosen before the service (deep link
	// from a provider profile). It is honored only if compatible with the
	// selected service's category, otherwise discarded.
	PreferredProviderID string `json:"preferredProviderId,omitempty"`

	Service          *ServiceOffering `json:"service,omitempty"`
	OfferedProviders []Provider       `json:"offeredProviders,omitempty"`
	Provider         *Provider        `json:"provider,omitempty"`
	Date             string           `json:"date,omitempty"`
	SlotMenu         []Slot           `json:"slotMenu,omitempty"`
	Slot             *Slot            `json:"slot,omitempty"`
}
