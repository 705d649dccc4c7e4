package service

import (
	"testing"

	"github.com/promoledger/internal/constants"
)

func TestClassifyTierBands(t *testing.T) {
	cases := []struct {
		tickets  int
		tier     string
		rate     string
	}{
		{0, constants.TierBronze, "0.20"},
		{1, constants.TierBronze, "0.20"},
		{24, constants.TierBronze, "0.20"},
		{25, constants.TierSilver, "0.25"},
		{49, constants.TierSilver, "0.25"},
		{50, constants.TierGold, "0.30"},
		{99, constants.TierGold, "0.30"},
		{100, constants.TierPlatinum, "0.35"},
		{250, constants.TierPlatinum, "0.35"},
	}
	for _, tc := range cases {
		result := ClassifyTier(tc.tickets)
		if result.Tier != tc.tier {
			t.Fatalf("tickets=%d: expected tier %s, got %s", tc.tickets, tc.tier, result.Tier)
		}
		if result.CommissionRate.String() != tc.rate {
			t.Fatalf("tickets=%d: expected rate %s, got %s", tc.tickets, tc.rate, result.CommissionRate.String())
		}
	}
}

func TestClassifyTierClampsNegativeInput(t *testing.T) {
	result := ClassifyTier(-5)
	if result.Tier != constants.TierBronze {
		t.Fatalf("expected negative input clamped to Bronze, got %s", result.Tier)
	}
	if result.CommissionRate.String() != "0.20" {
		t.Fatalf("expected Bronze rate 0.20, got %s", result.CommissionRate.String())
	}
}

func TestClassifyTierIsDeterministic(t *testing.T) {
	first := ClassifyTier(75)
	second := ClassifyTier(75)
	if first.Tier != second.Tier || !first.CommissionRate.Equal(second.CommissionRate.Decimal) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}
