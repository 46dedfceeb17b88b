package loyalty

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(testCustomerLadder(), testInfluencerLadder(), testSettings())
	if err != nil {
		t.Fatalf("build engine failed: %v", err)
	}
	return engine
}

func TestNewEngineRejectsBrokenConfig(t *testing.T) {
	settings := testSettings()
	delete(settings.TierMultipliers, "gold")
	if _, err := NewEngine(testCustomerLadder(), testInfluencerLadder(), settings); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}

	ladder := testCustomerLadder()
	ladder[0].MinVolumeLiters = decimal.NewFromInt(10)
	if _, err := NewEngine(ladder, testInfluencerLadder(), testSettings()); !errors.Is(err, ErrLadderInvalid) {
		t.Fatalf("expected ErrLadderInvalid, got %v", err)
	}
}

func TestProcessSaleWithoutInfluencer(t *testing.T) {
	engine := testEngine(t)

	outcome, err := engine.ProcessSale(SaleInput{
		SaleAmount:       decimal.NewFromInt(100),
		CustomerVolume:   decimal.NewFromInt(160),
		PrevCustomerTier: "silver",
		HasInfluencer:    false,
	})
	if err != nil {
		t.Fatalf("process sale failed: %v", err)
	}
	if outcome.CustomerTier.Code != "gold" || !outcome.CustomerTierChanged {
		t.Fatalf("expected promotion to gold, got %s changed=%v", outcome.CustomerTier.Code, outcome.CustomerTierChanged)
	}
	// 100 × 30% = 30.00
	if outcome.CashbackAmount.StringFixed(2) != "30.00" {
		t.Fatalf("expected cashback 30.00, got %s", outcome.CashbackAmount.StringFixed(2))
	}
	if !outcome.CommissionDelta.IsZero() {
		t.Fatalf("no influencer must mean no commission, got %s", outcome.CommissionDelta)
	}
	if outcome.Payout.Eligible {
		t.Fatalf("payout decision must stay empty without influencer")
	}
}

func TestProcessSaleCreditsCommissionAndPayout(t *testing.T) {
	engine := testEngine(t)

	outcome, err := engine.ProcessSale(SaleInput{
		SaleAmount:         decimal.NewFromInt(1000),
		CustomerVolume:     decimal.NewFromInt(20),
		PrevCustomerTier:   "lead",
		HasInfluencer:      true,
		PrevInfluencerTier: "silver",
		Referrals:          16,
		ActiveClients:      25,
		MonthlyCommission:  decimal.NewFromInt(10),
		PendingBalance:     decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("process sale failed: %v", err)
	}
	if outcome.CustomerTier.Code != "lead" || outcome.CustomerTierChanged {
		t.Fatalf("expected customer to stay lead, got %s changed=%v", outcome.CustomerTier.Code, outcome.CustomerTierChanged)
	}
	if outcome.InfluencerTier.Code != "gold" || !outcome.InfluencerTierChanged {
		t.Fatalf("expected influencer promotion to gold, got %s changed=%v", outcome.InfluencerTier.Code, outcome.InfluencerTierChanged)
	}
	// 1000 × 5 × 1.5 / 100 = 75.00
	if outcome.CommissionDelta.StringFixed(2) != "75.00" {
		t.Fatalf("expected commission 75.00, got %s", outcome.CommissionDelta.StringFixed(2))
	}
	if outcome.MonthlyCommission.StringFixed(2) != "85.00" {
		t.Fatalf("expected monthly total 85.00, got %s", outcome.MonthlyCommission.StringFixed(2))
	}
	if outcome.PendingBalance.StringFixed(2) != "80.00" {
		t.Fatalf("expected pending balance 80.00, got %s", outcome.PendingBalance.StringFixed(2))
	}
	if !outcome.Payout.Eligible || outcome.Payout.AutoApproved {
		t.Fatalf("balance above threshold: eligible yes, auto-approve no, got %+v", outcome.Payout)
	}
}

func TestProcessSaleRespectsMonthlyCap(t *testing.T) {
	engine := testEngine(t)

	outcome, err := engine.ProcessSale(SaleInput{
		SaleAmount:         decimal.NewFromInt(1000),
		CustomerVolume:     decimal.NewFromInt(500),
		PrevCustomerTier:   "platinum",
		HasInfluencer:      true,
		PrevInfluencerTier: "gold",
		Referrals:          15,
		ActiveClients:      25,
		MonthlyCommission:  decimal.NewFromInt(980),
		PendingBalance:     decimal.Zero,
	})
	if err != nil {
		t.Fatalf("process sale failed: %v", err)
	}
	// 本应得 75.00，封顶后只入账 20.00
	if outcome.CommissionDelta.StringFixed(2) != "20.00" {
		t.Fatalf("expected clamped commission 20.00, got %s", outcome.CommissionDelta.StringFixed(2))
	}
	if outcome.MonthlyCommission.StringFixed(2) != "1000.00" {
		t.Fatalf("expected monthly total at cap, got %s", outcome.MonthlyCommission.StringFixed(2))
	}
	if outcome.PendingBalance.StringFixed(2) != "20.00" {
		t.Fatalf("expected pending balance 20.00, got %s", outcome.PendingBalance.StringFixed(2))
	}
}

func TestProcessSaleZeroCommissionBelowMinActiveClients(t *testing.T) {
	engine := testEngine(t)

	outcome, err := engine.ProcessSale(SaleInput{
		SaleAmount:         decimal.NewFromInt(500),
		CustomerVolume:     decimal.NewFromInt(10),
		PrevCustomerTier:   "lead",
		HasInfluencer:      true,
		PrevInfluencerTier: "lead",
		Referrals:          3,
		ActiveClients:      4,
		MonthlyCommission:  decimal.Zero,
		PendingBalance:     decimal.Zero,
	})
	if err != nil {
		t.Fatalf("process sale failed: %v", err)
	}
	if !outcome.CommissionDelta.IsZero() || !outcome.PendingBalance.IsZero() {
		t.Fatalf("below min active clients must credit nothing, got delta=%s balance=%s",
			outcome.CommissionDelta, outcome.PendingBalance)
	}
	if outcome.Payout.Eligible {
		t.Fatalf("zero balance must not be payout eligible")
	}
}

func TestProcessSaleAutoApprovesAtThreshold(t *testing.T) {
	engine := testEngine(t)

	// 42.50 + 7.50 = 50.00，恰好等于阈值
	outcome, err := engine.ProcessSale(SaleInput{
		SaleAmount:         decimal.NewFromInt(100),
		CustomerVolume:     decimal.NewFromInt(60),
		PrevCustomerTier:   "silver",
		HasInfluencer:      true,
		PrevInfluencerTier: "gold",
		Referrals:          15,
		ActiveClients:      25,
		MonthlyCommission:  decimal.Zero,
		PendingBalance:     decimal.NewFromFloat(42.5),
	})
	if err != nil {
		t.Fatalf("process sale failed: %v", err)
	}
	if outcome.PendingBalance.StringFixed(2) != "50.00" {
		t.Fatalf("expected balance 50.00, got %s", outcome.PendingBalance.StringFixed(2))
	}
	if !outcome.Payout.Eligible || !outcome.Payout.AutoApproved {
		t.Fatalf("balance at threshold must auto-approve, got %+v", outcome.Payout)
	}
}

func TestProcessSaleRejectsNegativeAmount(t *testing.T) {
	engine := testEngine(t)
	_, err := engine.ProcessSale(SaleInput{SaleAmount: decimal.NewFromInt(-1)})
	if !errors.Is(err, ErrInvalidMetric) {
		t.Fatalf("expected ErrInvalidMetric, got %v", err)
	}
}
