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
	"gorm.io/gorm"
)

func setupCustomerServiceTest(t *testing.T) (*CustomerService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:customer_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Influencer{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCustomerService(repository.NewCustomerRepository(db), repository.NewInfluencerRepository(db))
	return svc, db
}

func TestCreateCustomerWithoutReferral(t *testing.T) {
	svc, _ := setupCustomerServiceTest(t)

	customer, err := svc.Create(CustomerCreateInput{
		Name:  " Maria dos Santos ",
		Phone: " +244933000001 ",
	})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	if customer.Name != "Maria dos Santos" || customer.Phone != "+244933000001" {
		t.Fatalf("expected trimmed fields, got %+v", customer)
	}
	if customer.TierCode != constants.TierCodeLead {
		t.Fatalf("expected lead tier, got %s", customer.TierCode)
	}
	if customer.InfluencerID != nil {
		t.Fatalf("expected no attribution, got %+v", customer.InfluencerID)
	}

	if _, err := svc.Create(CustomerCreateInput{Name: "Outro", Phone: "+244933000001"}); !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
	if _, err := svc.Create(CustomerCreateInput{Name: "", Phone: "+244933000099"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateCustomerWithReferralCode(t *testing.T) {
	svc, db := setupCustomerServiceTest(t)

	influencer := models.Influencer{
		Name:         "Embaixador Teste",
		Phone:        "+244944000001",
		ReferralCode: "AQREF001",
		TierCode:     constants.TierCodeLead,
		Status:       constants.InfluencerStatusActive,
	}
	if err := db.Create(&influencer).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}

	customer, err := svc.Create(CustomerCreateInput{
		Name:         "João Manuel",
		Phone:        "+244933000002",
		ReferralCode: "AQREF001",
	})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	if customer.InfluencerID == nil || *customer.InfluencerID != influencer.ID {
		t.Fatalf("expected attribution to influencer %d, got %+v", influencer.ID, customer.InfluencerID)
	}

	var reloaded models.Influencer
	if err := db.First(&reloaded, influencer.ID).Error; err != nil {
		t.Fatalf("reload influencer failed: %v", err)
	}
	if reloaded.ReferralCount != 1 {
		t.Fatalf("expected referral count 1, got %d", reloaded.ReferralCount)
	}

	if _, err := svc.Create(CustomerCreateInput{
		Name:         "Cliente Inválido",
		Phone:        "+244933000003",
		ReferralCode: "NAOEXISTE",
	}); !errors.Is(err, ErrReferralCodeInvalid) {
		t.Fatalf("expected ErrReferralCodeInvalid, got %v", err)
	}
}

func TestCreateCustomerRejectInactiveInfluencer(t *testing.T) {
	svc, db := setupCustomerServiceTest(t)

	influencer := models.Influencer{
		Name:         "Embaixador Parado",
		Phone:        "+244944000002",
		ReferralCode: "AQREF002",
		TierCode:     constants.TierCodeLead,
		Status:       constants.InfluencerStatusInactive,
	}
	if err := db.Create(&influencer).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}

	if _, err := svc.Create(CustomerCreateInput{
		Name:         "Cliente Teste",
		Phone:        "+244933000004",
		ReferralCode: "AQREF002",
	}); !errors.Is(err, ErrInfluencerInactive) {
		t.Fatalf("expected ErrInfluencerInactive, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		t.Fatalf("count customers failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected attribution rollback, got %d customers", count)
	}
}

func TestUpdateCustomerStatus(t *testing.T) {
	svc, _ := setupCustomerServiceTest(t)

	customer, err := svc.Create(CustomerCreateInput{Name: "Maria", Phone: "+244933000005"})
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	disabled := constants.CustomerStatusDisabled
	updated, err := svc.Update(customer.ID, CustomerUpdateInput{Status: &disabled})
	if err != nil {
		t.Fatalf("update customer failed: %v", err)
	}
	if updated.Status != constants.CustomerStatusDisabled {
		t.Fatalf("expected disabled status, got %s", updated.Status)
	}

	bad := "banned"
	if _, err := svc.Update(customer.ID, CustomerUpdateInput{Status: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	empty := " "
	if _, err := svc.Update(customer.ID, CustomerUpdateInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestCountActiveByInfluencerWindow(t *testing.T) {
	svc, db := setupCustomerServiceTest(t)

	influencer := models.Influencer{
		Name:         "Embaixador Teste",
		Phone:        "+244944000003",
		ReferralCode: "AQREF003",
		TierCode:     constants.TierCodeLead,
		Status:       constants.InfluencerStatusActive,
	}
	if err := db.Create(&influencer).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}

	now := time.Now()
	recent := now.AddDate(0, 0, -10)
	stale := now.AddDate(0, 0, -120)
	rows := []models.Customer{
		{Name: "Ativa", Phone: "+244933000006", InfluencerID: &influencer.ID, TierCode: constants.TierCodeLead, Status: constants.CustomerStatusActive, LastPurchaseAt: &recent},
		{Name: "Parada", Phone: "+244933000007", InfluencerID: &influencer.ID, TierCode: constants.TierCodeLead, Status: constants.CustomerStatusActive, LastPurchaseAt: &stale},
		{Name: "Nunca comprou", Phone: "+244933000008", InfluencerID: &influencer.ID, TierCode: constants.TierCodeLead, Status: constants.CustomerStatusActive},
		{Name: "Desativada", Phone: "+244933000009", InfluencerID: &influencer.ID, TierCode: constants.TierCodeLead, Status: constants.CustomerStatusDisabled, LastPurchaseAt: &recent},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("create customer fixture failed: %v", err)
		}
	}

	count, err := svc.CountActiveByInfluencer(influencer.ID, now)
	if err != nil {
		t.Fatalf("count active clients failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 active client inside 90 day window, got %d", count)
	}
}
