package models

// LoyaltyTier is one of the four ordered loyalty levels.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

// TierThreshold binds a tier to the minimum lifetime spend that unlocks it.
type TierThreshold struct {
	Tier            LoyaltyTier `json:"tier"`
	MinSpend        int         `json:"minSpend"` // minor currency units
	CashbackPercent int         `json:"cashbackPercent"`
}

// tierTable is ordered ascending by MinSpend; TierFor relies on that.
var tierTable = []TierThreshold{
	{Tier: TierBronze, MinSpend: 0, CashbackPercent: 0},
	{Tier: TierSilver, MinSpend: 5000, CashbackPercent: 5},
	{Tier: TierGold, MinSpend: 10000, CashbackPercent: 10},
	{Tier: TierPlatinum, MinSpend: 20000, CashbackPercent: 15},
}

// TierTable returns a copy of the static tier ladder.
func TierTable() []TierThreshold {
	out := make([]TierThreshold, len(tierTable))
	copy(out, tierTable)
	return out
}

// TierFor returns the highest tier whose threshold does not exceed the given
// lifetime spend. It is a pure function of spend alone.
func TierFor(lifetimeSpend int) TierThreshold {
	current := tierTable[0]
	for _, t := range tierTable {
		if lifetimeSpend >= t.MinSpend {
			current = t
		}
	}
	return current
}

// NextTierAfter returns the first tier above the given lifetime spend, or nil
// when the top tier is already reached.
func NextTierAfter(lifetimeSpend int) *TierThreshold {
	for _, t := range tierTable {
		if lifetimeSpend < t.MinSpend {
			next := t
			return &next
		}
	}
	return nil
}

// LoyaltySummary is the client-facing view of a loyalty account, including
// progress toward the next tier.
type LoyaltySummary struct {
	ClientID        string       `json:"clientId"`
	Points          int          `json:"points"`
	LifetimeSpend   int          `json:"lifetimeSpend"`
	Tier            LoyaltyTier  `json:"tier"`
	CashbackPercent int          `json:"cashbackPercent"`
	NextTier        *LoyaltyTier `json:"nextTier,omitempty"`
	SpendToNextTier int          `json:"spendToNextTier,omitempty"`
}
