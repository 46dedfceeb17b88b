package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupInfluencerServiceTest(t *testing.T) (*InfluencerService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:influencer_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Influencer{}, &models.Customer{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewInfluencerService(repository.NewInfluencerRepository(db), repository.NewCustomerRepository(db))
	return svc, db
}

func TestCreateInfluencerAssignsReferralCode(t *testing.T) {
	svc, _ := setupInfluencerServiceTest(t)

	influencer, err := svc.Create(InfluencerCreateInput{
		Name:  " Ana Paula ",
		Phone: " +244955000001 ",
	})
	if err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}
	if influencer.Name != "Ana Paula" {
		t.Fatalf("expected trimmed name, got %q", influencer.Name)
	}
	if len(influencer.ReferralCode) != referralCodeLength {
		t.Fatalf("expected referral code length %d, got %q", referralCodeLength, influencer.ReferralCode)
	}
	if influencer.TierCode != constants.TierCodeLead {
		t.Fatalf("expected lead tier, got %s", influencer.TierCode)
	}
	if influencer.CommissionMonth != time.Now().Format("2006-01") {
		t.Fatalf("expected current commission month, got %s", influencer.CommissionMonth)
	}

	if _, err := svc.Create(InfluencerCreateInput{Name: "", Phone: "+244955000002"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetInfluencerByReferralCode(t *testing.T) {
	svc, _ := setupInfluencerServiceTest(t)

	created, err := svc.Create(InfluencerCreateInput{Name: "Carlos", Phone: "+244955000003"})
	if err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}

	found, err := svc.GetByReferralCode(created.ReferralCode)
	if err != nil {
		t.Fatalf("get by referral code failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected influencer %d, got %d", created.ID, found.ID)
	}

	if _, err := svc.GetByReferralCode("NAOEXISTE"); !errors.Is(err, ErrReferralCodeInvalid) {
		t.Fatalf("expected ErrReferralCodeInvalid, got %v", err)
	}
}

func TestUpdateInfluencerStatus(t *testing.T) {
	svc, db := setupInfluencerServiceTest(t)

	created, err := svc.Create(InfluencerCreateInput{Name: "Carlos", Phone: "+244955000004"})
	if err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}

	if err := svc.UpdateStatus(created.ID, constants.InfluencerStatusInactive); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	var reloaded models.Influencer
	if err := db.First(&reloaded, created.ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if reloaded.Status != constants.InfluencerStatusInactive {
		t.Fatalf("expected inactive status, got %s", reloaded.Status)
	}

	if err := svc.UpdateStatus(created.ID, "suspended"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if err := svc.UpdateStatus(99999, constants.InfluencerStatusActive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRefreshActiveClients(t *testing.T) {
	svc, db := setupInfluencerServiceTest(t)

	created, err := svc.Create(InfluencerCreateInput{Name: "Carlos", Phone: "+244955000005"})
	if err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}

	now := time.Now()
	recent := now.AddDate(0, 0, -5)
	customer := models.Customer{
		Name:           "Cliente Ativa",
		Phone:          "+244933000010",
		InfluencerID:   &created.ID,
		TierCode:       constants.TierCodeLead,
		Status:         constants.CustomerStatusActive,
		LastPurchaseAt: &recent,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	refreshed, err := svc.RefreshActiveClients(created.ID, now)
	if err != nil {
		t.Fatalf("refresh active clients failed: %v", err)
	}
	if refreshed.ActiveClientCount != 1 {
		t.Fatalf("expected active client count 1, got %d", refreshed.ActiveClientCount)
	}
}

func TestRolloverMonthlyCommission(t *testing.T) {
	svc, db := setupInfluencerServiceTest(t)

	now := time.Now()
	current := now.Format("2006-01")
	rows := []models.Influencer{
		{Name: "Atrasado", Phone: "+244955000006", ReferralCode: "AQROLL01", TierCode: constants.TierCodeLead, Status: constants.InfluencerStatusActive, MonthlyCommission: models.NewMoneyFromDecimal(decimal.NewFromInt(300)), CommissionMonth: "2000-01"},
		{Name: "Em dia", Phone: "+244955000007", ReferralCode: "AQROLL02", TierCode: constants.TierCodeLead, Status: constants.InfluencerStatusActive, MonthlyCommission: models.NewMoneyFromDecimal(decimal.NewFromInt(120)), CommissionMonth: current},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("create influencer fixture failed: %v", err)
		}
	}

	affected, err := svc.RolloverMonthlyCommission(now)
	if err != nil {
		t.Fatalf("rollover failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	var stale models.Influencer
	if err := db.First(&stale, rows[0].ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if !stale.MonthlyCommission.Decimal.IsZero() {
		t.Fatalf("expected stale monthly commission zeroed, got %s", stale.MonthlyCommission.Decimal)
	}
	if stale.CommissionMonth != current {
		t.Fatalf("expected commission month %s, got %s", current, stale.CommissionMonth)
	}

	var fresh models.Influencer
	if err := db.First(&fresh, rows[1].ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if !fresh.MonthlyCommission.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected current month commission untouched, got %s", fresh.MonthlyCommission.Decimal)
	}
}
