package loyalty

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testCustomerLadder() Ladder {
	return Ladder{
		{Code: "lead", Name: "Lead", Rank: 0, MinVolumeLiters: decimal.Zero, CashbackPercent: decimal.NewFromInt(5), CommissionMultiplier: decimal.NewFromInt(1)},
		{Code: "silver", Name: "Prata", Rank: 1, MinVolumeLiters: decimal.NewFromInt(50), CashbackPercent: decimal.NewFromInt(20), CommissionMultiplier: decimal.NewFromFloat(1.2)},
		{Code: "gold", Name: "Ouro", Rank: 2, MinVolumeLiters: decimal.NewFromInt(150), CashbackPercent: decimal.NewFromInt(30), CommissionMultiplier: decimal.NewFromFloat(1.5)},
		{Code: "platinum", Name: "Platina", Rank: 3, MinVolumeLiters: decimal.NewFromInt(300), CashbackPercent: decimal.NewFromInt(40), CommissionMultiplier: decimal.NewFromInt(2)},
	}
}

func testInfluencerLadder() Ladder {
	return Ladder{
		{Code: "lead", Name: "Lead", Rank: 0, CommissionMultiplier: decimal.NewFromInt(1)},
		{Code: "silver", Name: "Prata", Rank: 1, MinReferrals: 5, MinActiveClients: 10, CommissionMultiplier: decimal.NewFromFloat(1.2)},
		{Code: "gold", Name: "Ouro", Rank: 2, MinReferrals: 15, MinActiveClients: 25, CommissionMultiplier: decimal.NewFromFloat(1.5)},
		{Code: "platinum", Name: "Platina", Rank: 3, MinReferrals: 30, MinActiveClients: 50, CommissionMultiplier: decimal.NewFromInt(2)},
	}
}

func TestClassifyVolumeBoundaries(t *testing.T) {
	ladder := testCustomerLadder()
	cases := []struct {
		volume   string
		expected string
	}{
		{"0", "lead"},
		{"49.99", "lead"},
		{"50", "silver"},
		{"149.99", "silver"},
		{"150", "gold"},
		{"299.99", "gold"},
		{"300", "platinum"},
		{"10000", "platinum"},
	}
	for _, tc := range cases {
		volume, err := decimal.NewFromString(tc.volume)
		if err != nil {
			t.Fatalf("parse volume %s failed: %v", tc.volume, err)
		}
		tier, err := ClassifyVolume(volume, ladder)
		if err != nil {
			t.Fatalf("classify %s failed: %v", tc.volume, err)
		}
		if tier.Code != tc.expected {
			t.Fatalf("volume %s: expected tier %s, got %s", tc.volume, tc.expected, tier.Code)
		}
	}
}

func TestClassifyVolumeMonotonic(t *testing.T) {
	ladder := testCustomerLadder()
	prevRank := -1
	for liters := 0; liters <= 400; liters += 10 {
		tier, err := ClassifyVolume(decimal.NewFromInt(int64(liters)), ladder)
		if err != nil {
			t.Fatalf("classify %d failed: %v", liters, err)
		}
		if tier.Rank < prevRank {
			t.Fatalf("tier rank decreased at %d liters: %d -> %d", liters, prevRank, tier.Rank)
		}
		prevRank = tier.Rank
	}
}

func TestClassifyVolumeRejectsNegative(t *testing.T) {
	_, err := ClassifyVolume(decimal.NewFromInt(-1), testCustomerLadder())
	if !errors.Is(err, ErrInvalidMetric) {
		t.Fatalf("expected ErrInvalidMetric, got %v", err)
	}
}

func TestClassifyNetworkRequiresBothMetrics(t *testing.T) {
	ladder := testInfluencerLadder()

	// 推荐数达标但活跃客户不足，单项达标不晋级
	tier, err := ClassifyNetwork(20, 5, ladder)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if tier.Code != "lead" {
		t.Fatalf("expected lead for partial qualification, got %s", tier.Code)
	}

	tier, err = ClassifyNetwork(15, 25, ladder)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if tier.Code != "gold" {
		t.Fatalf("expected gold at exact thresholds, got %s", tier.Code)
	}

	tier, err = ClassifyNetwork(31, 60, ladder)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if tier.Code != "platinum" {
		t.Fatalf("expected platinum, got %s", tier.Code)
	}
}

func TestClassifyNetworkRejectsNegative(t *testing.T) {
	if _, err := ClassifyNetwork(-1, 10, testInfluencerLadder()); !errors.Is(err, ErrInvalidMetric) {
		t.Fatalf("expected ErrInvalidMetric for negative referrals, got %v", err)
	}
	if _, err := ClassifyNetwork(10, -1, testInfluencerLadder()); !errors.Is(err, ErrInvalidMetric) {
		t.Fatalf("expected ErrInvalidMetric for negative active clients, got %v", err)
	}
}

func TestValidateCustomerLadder(t *testing.T) {
	if err := ValidateCustomerLadder(testCustomerLadder()); err != nil {
		t.Fatalf("expected valid ladder, got %v", err)
	}

	broken := testCustomerLadder()
	broken[2].MinVolumeLiters = decimal.NewFromInt(50) // 与 silver 相同，不再严格递增
	if err := ValidateCustomerLadder(broken); !errors.Is(err, ErrLadderInvalid) {
		t.Fatalf("expected ErrLadderInvalid, got %v", err)
	}

	if err := ValidateCustomerLadder(Ladder{}); !errors.Is(err, ErrLadderInvalid) {
		t.Fatalf("expected ErrLadderInvalid for empty ladder, got %v", err)
	}
}

func TestValidateInfluencerLadder(t *testing.T) {
	if err := ValidateInfluencerLadder(testInfluencerLadder()); err != nil {
		t.Fatalf("expected valid ladder, got %v", err)
	}

	broken := testInfluencerLadder()
	broken[3].MinActiveClients = 25
	if err := ValidateInfluencerLadder(broken); !errors.Is(err, ErrLadderInvalid) {
		t.Fatalf("expected ErrLadderInvalid, got %v", err)
	}
}
