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

func setupPayoutServiceTest(t *testing.T) (*PayoutService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:payout_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Influencer{}, &models.PayoutRequest{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	settingSvc := NewSettingService(repository.NewSettingRepository(db))
	svc := NewPayoutService(
		repository.NewPayoutRepository(db),
		repository.NewInfluencerRepository(db),
		settingSvc,
		nil,
	)
	return svc, db
}

func createPayoutTestInfluencer(t *testing.T, db *gorm.DB, phone string, pendingBalance int64) *models.Influencer {
	t.Helper()

	row := models.Influencer{
		Name:           "Embaixador Teste",
		Phone:          phone,
		ReferralCode:   "REF" + phone,
		TierCode:       constants.TierCodeLead,
		PendingBalance: models.NewMoneyFromDecimal(decimal.NewFromInt(pendingBalance)),
		Status:         constants.InfluencerStatusActive,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}
	return &row
}

func TestRequestPayoutBelowThreshold(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000001", 40)

	_, err := svc.Request(influencer.ID, nil)
	if !errors.Is(err, ErrPayoutBelowThreshold) {
		t.Fatalf("expected ErrPayoutBelowThreshold, got %v", err)
	}
}

func TestRequestPayoutFreezesFullBalance(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000002", 120)

	req, err := svc.Request(influencer.ID, nil)
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}
	if req.Status != constants.PayoutStatusPending {
		t.Fatalf("expected pending status, got %s", req.Status)
	}
	if !req.Amount.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected amount 120, got %s", req.Amount.Decimal)
	}

	var reloaded models.Influencer
	if err := db.First(&reloaded, influencer.ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if !reloaded.PendingBalance.Decimal.IsZero() {
		t.Fatalf("expected balance frozen to 0, got %s", reloaded.PendingBalance.Decimal)
	}
}

func TestRequestPayoutPartialAmount(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000003", 120)

	amount := decimal.NewFromInt(60)
	req, err := svc.Request(influencer.ID, &amount)
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}
	if !req.Amount.Decimal.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected amount 60, got %s", req.Amount.Decimal)
	}

	var reloaded models.Influencer
	if err := db.First(&reloaded, influencer.ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if !reloaded.PendingBalance.Decimal.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected remaining balance 60, got %s", reloaded.PendingBalance.Decimal)
	}
}

func TestRequestPayoutRejectOverdraw(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000004", 120)

	amount := decimal.NewFromInt(200)
	if _, err := svc.Request(influencer.ID, &amount); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	zero := decimal.Zero
	if _, err := svc.Request(influencer.ID, &zero); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero amount, got %v", err)
	}
}

func TestRequestPayoutRejectDuplicatePending(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000005", 200)

	amount := decimal.NewFromInt(60)
	if _, err := svc.Request(influencer.ID, &amount); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, err := svc.Request(influencer.ID, &amount); !errors.Is(err, ErrPayoutAlreadyPending) {
		t.Fatalf("expected ErrPayoutAlreadyPending, got %v", err)
	}
}

func TestReviewPayoutApprove(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000006", 120)

	req, err := svc.Request(influencer.ID, nil)
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}

	reviewed, err := svc.Review(req.ID, 7, constants.PayoutActionApprove, "")
	if err != nil {
		t.Fatalf("review approve failed: %v", err)
	}
	if reviewed.Status != constants.PayoutStatusApproved {
		t.Fatalf("expected approved status, got %s", reviewed.Status)
	}
	if reviewed.BankReference == "" {
		t.Fatalf("expected bank reference assigned")
	}
	if reviewed.ProcessedBy == nil || *reviewed.ProcessedBy != 7 {
		t.Fatalf("expected processed by 7, got %+v", reviewed.ProcessedBy)
	}
	if reviewed.ProcessedAt == nil {
		t.Fatalf("expected processed at set")
	}

	var reloaded models.Influencer
	if err := db.First(&reloaded, influencer.ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if !reloaded.TotalPaid.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected total paid 120, got %s", reloaded.TotalPaid.Decimal)
	}
	if !reloaded.PendingBalance.Decimal.IsZero() {
		t.Fatalf("expected pending balance stays 0, got %s", reloaded.PendingBalance.Decimal)
	}
}

func TestReviewPayoutRejectRestoresBalance(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000007", 120)

	req, err := svc.Request(influencer.ID, nil)
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}

	if _, err := svc.Review(req.ID, 7, constants.PayoutActionReject, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty reject reason, got %v", err)
	}

	reviewed, err := svc.Review(req.ID, 7, constants.PayoutActionReject, " dados bancários inválidos ")
	if err != nil {
		t.Fatalf("review reject failed: %v", err)
	}
	if reviewed.Status != constants.PayoutStatusRejected {
		t.Fatalf("expected rejected status, got %s", reviewed.Status)
	}
	if reviewed.RejectReason != "dados bancários inválidos" {
		t.Fatalf("expected trimmed reason, got %q", reviewed.RejectReason)
	}

	var reloaded models.Influencer
	if err := db.First(&reloaded, influencer.ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if !reloaded.PendingBalance.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected balance restored to 120, got %s", reloaded.PendingBalance.Decimal)
	}
	if !reloaded.TotalPaid.Decimal.IsZero() {
		t.Fatalf("expected total paid untouched, got %s", reloaded.TotalPaid.Decimal)
	}
}

func TestReviewPayoutTerminalStatus(t *testing.T) {
	svc, db := setupPayoutServiceTest(t)
	influencer := createPayoutTestInfluencer(t, db, "+244922000008", 120)

	req, err := svc.Request(influencer.ID, nil)
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}
	if _, err := svc.Review(req.ID, 7, constants.PayoutActionApprove, ""); err != nil {
		t.Fatalf("review approve failed: %v", err)
	}

	if _, err := svc.Review(req.ID, 7, constants.PayoutActionReject, "tarde demais"); !errors.Is(err, ErrPayoutAlreadyProcessed) {
		t.Fatalf("expected ErrPayoutAlreadyProcessed, got %v", err)
	}
	if _, err := svc.Review(req.ID, 7, "cancel", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown action, got %v", err)
	}
}
