package models

import "time"

// ClientAccount is a client's record with their accumulated loyalty state.
// Points, spend, tier and cashback are mutated only by the loyalty ledger.
type ClientAccount struct {
	ID              string      `bson:"id" json:"id"`
	Name            string      `bson:"name" json:"name"`
	Phone           string      `bson:"phone" json:"phone"` // digits only, no formatting
	Points          int         `bson:"points" json:"points"`
	LifetimeSpend   int         `bson:"lifetimeSpend" json:"lifetimeSpend"` // minor currency units
	Tier            LoyaltyTier `bson:"tier" json:"tier"`
	CashbackPercent int         `bson:"cashbackPercent" json:"cashbackPercent"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updatedAt" json:"updatedAt"`
}
