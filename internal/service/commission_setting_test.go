package service

import (
	"testing"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"

	"github.com/shopspring/decimal"
)

type mockSettingRepo struct {
	store map[string]models.JSON
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{store: map[string]models.JSON{}}
}

func (m *mockSettingRepo) GetByKey(key string) (*models.Setting, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func (m *mockSettingRepo) Upsert(key string, value models.JSON) (*models.Setting, error) {
	m.store[key] = value
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func TestNormalizeCommissionSetting(t *testing.T) {
	setting := NormalizeCommissionSetting(CommissionSetting{
		BaseRatePercent: 150,
		TierMultipliers: map[string]float64{
			" Gold ": 1.5,
			"":       9,
			"lead":   -1,
		},
		MinActiveClients: -5,
		PayoutThreshold:  -10,
		MonthlyCap:       -1,
	})
	if setting.BaseRatePercent != 100 {
		t.Fatalf("expected base rate clamped to 100, got %v", setting.BaseRatePercent)
	}
	if len(setting.TierMultipliers) != 2 {
		t.Fatalf("expected 2 multipliers after normalize, got %v", setting.TierMultipliers)
	}
	if setting.TierMultipliers["gold"] != 1.5 {
		t.Fatalf("expected gold multiplier 1.5, got %v", setting.TierMultipliers["gold"])
	}
	if setting.TierMultipliers["lead"] != 0 {
		t.Fatalf("expected negative multiplier clamped to 0, got %v", setting.TierMultipliers["lead"])
	}
	if setting.MinActiveClients != 0 {
		t.Fatalf("expected min active clients clamped to 0, got %d", setting.MinActiveClients)
	}
	if setting.PayoutThreshold != 0 || setting.MonthlyCap != 0 {
		t.Fatalf("expected negative amounts clamped to 0, got %v / %v", setting.PayoutThreshold, setting.MonthlyCap)
	}
	if setting.PayoutFrequency != constants.PayoutFrequencyMonthly {
		t.Fatalf("expected default payout frequency monthly, got %q", setting.PayoutFrequency)
	}
}

func TestValidateCommissionSetting(t *testing.T) {
	if err := ValidateCommissionSetting(CommissionDefaultSetting()); err != nil {
		t.Fatalf("expected default setting valid, got %v", err)
	}

	invalid := CommissionDefaultSetting()
	invalid.TierMultipliers = nil
	if err := ValidateCommissionSetting(invalid); err == nil {
		t.Fatalf("expected missing multipliers rejected")
	}

	invalid = CommissionDefaultSetting()
	invalid.PayoutThreshold = 500
	invalid.MonthlyCap = 100
	if err := ValidateCommissionSetting(invalid); err == nil {
		t.Fatalf("expected cap below threshold rejected")
	}

	invalid = CommissionDefaultSetting()
	invalid.PayoutFrequency = "yearly"
	if err := ValidateCommissionSetting(invalid); err == nil {
		t.Fatalf("expected unsupported frequency rejected")
	}
}

func TestGetCommissionSettingFallbackDefault(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())

	setting, err := svc.GetCommissionSetting()
	if err != nil {
		t.Fatalf("get commission setting failed: %v", err)
	}
	expected := CommissionDefaultSetting()
	if setting.BaseRatePercent != expected.BaseRatePercent {
		t.Fatalf("expected default base rate %v, got %v", expected.BaseRatePercent, setting.BaseRatePercent)
	}
	if setting.PayoutThreshold != expected.PayoutThreshold {
		t.Fatalf("expected default threshold %v, got %v", expected.PayoutThreshold, setting.PayoutThreshold)
	}
}

func TestUpdateCommissionSettingPersists(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())

	updated := CommissionDefaultSetting()
	updated.BaseRatePercent = 8
	updated.PayoutThreshold = 100
	updated.MonthlyCap = 2000
	updated.AutoApproval = false
	if _, err := svc.UpdateCommissionSetting(updated); err != nil {
		t.Fatalf("update commission setting failed: %v", err)
	}

	reloaded, err := svc.GetCommissionSetting()
	if err != nil {
		t.Fatalf("reload commission setting failed: %v", err)
	}
	if reloaded.BaseRatePercent != 8 {
		t.Fatalf("expected base rate 8, got %v", reloaded.BaseRatePercent)
	}
	if reloaded.PayoutThreshold != 100 || reloaded.MonthlyCap != 2000 {
		t.Fatalf("expected threshold 100 cap 2000, got %v / %v", reloaded.PayoutThreshold, reloaded.MonthlyCap)
	}
	if reloaded.AutoApproval {
		t.Fatalf("expected auto approval disabled")
	}
}

func TestToLoyaltySettings(t *testing.T) {
	setting := CommissionDefaultSetting()
	loyaltySettings := setting.ToLoyaltySettings()
	if !loyaltySettings.BaseRatePercent.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected base rate 5, got %s", loyaltySettings.BaseRatePercent)
	}
	if got := loyaltySettings.TierMultipliers[constants.TierCodePlatinum]; !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected platinum multiplier 2, got %s", got)
	}
	if !loyaltySettings.AutoApproval {
		t.Fatalf("expected auto approval enabled by default")
	}
}
