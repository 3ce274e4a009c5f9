package loyalty

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	clientRepo "github.com/vvladislovv/buitifal/database/repository/client"
	"github.com/vvladislovv/buitifal/models"
	"github.com/vvladislovv/buitifal/utils"
)

// Service maintains the per-client loyalty ledger.
type Service interface {
	// ApplyCharge credits a completed payment to the client's account,
	// creating the account on first charge. Name and phone, when non-empty,
	// refresh the stored client record.
	ApplyCharge(ctx context.Context, clientID, name, phone string, amount int) (*models.ClientAccount, error)
	// Summary reports the client's current standing and the distance to the
	// next tier.
	Summary(ctx context.Context, clientID string) (*models.LoyaltySummary, error)
}

// Apply credits a single charge to the account in place: points accrue at one
// per 100 minor units, lifetime spend grows by the full amount, and the tier
// is recomputed from the new lifetime spend. Tiers never regress because
// spend never decreases.
func Apply(acc *models.ClientAccount, amount int) error {
	if amount < 0 {
		return fmt.Errorf("charge amount must be non-negative, got %d", amount)
	}
	acc.Points += amount / 100
	acc.LifetimeSpend += amount
	tier := models.TierFor(acc.LifetimeSpend)
	acc.Tier = tier.Tier
	acc.CashbackPercent = tier.CashbackPercent
	return nil
}

// DefaultLoyaltyService implements Service over the client repository.
type DefaultLoyaltyService struct {
	Clients clientRepo.ClientRepository
}

var _ Service = (*DefaultLoyaltyService)(nil)

func (s *DefaultLoyaltyService) ApplyCharge(ctx context.Context, clientID, name, phone string, amount int) (*models.ClientAccount, error) {
	if clientID == "" {
		return nil, errors.New("client id is required")
	}

	acc, err := s.Clients.GetByID(ctx, clientID)
	switch {
	case errors.Is(err, clientRepo.ErrNotFound):
		acc = &models.ClientAccount{
			ID:   clientID,
			Tier: models.TierBronze,
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load client account: %w", err)
	}

	if name != "" {
		acc.Name = name
	}
	if phone != "" {
		acc.Phone = phone
	}

	before := acc.Tier
	if err := Apply(acc, amount); err != nil {
		return nil, err
	}
	if acc.Tier != before {
		utils.GetLogger().Info("loyalty tier reached",
			zap.String("clientId", clientID),
			zap.String("tier", string(acc.Tier)))
	}

	if err := s.Clients.Upsert(ctx, acc); err != nil {
		return nil, fmt.Errorf("failed to save client account: %w", err)
	}
	return acc, nil
}

func (s *DefaultLoyaltyService) Summary(ctx context.Context, clientID string) (*models.LoyaltySummary, error) {
	acc, err := s.Clients.GetByID(ctx, clientID)
	if errors.Is(err, clientRepo.ErrNotFound) {
		// A client with no charges yet is a bronze account at zero.
		acc = &models.ClientAccount{ID: clientID, Tier: models.TierBronze}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client account: %w", err)
	}

	summary := &models.LoyaltySummary{
		ClientID:        acc.ID,
		Points:          acc.Points,
		LifetimeSpend:   acc.LifetimeSpend,
		Tier:            acc.Tier,
		CashbackPercent: models.TierFor(acc.LifetimeSpend).CashbackPercent,
	}
	if next := models.NextTierAfter(acc.LifetimeSpend); next != nil {
		tier := next.Tier
		summary.NextTier = &tier
		summary.SpendToNextTier = next.MinSpend - acc.LifetimeSpend
	}
	return summary, nil
}
