package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/logger"
	"github.com/aqua-next/internal/loyalty"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/queue"
	"github.com/aqua-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService 销售记录业务服务
// 核实销售是整个结算链路的入口：客户升级、返现、佣金、提现资格都在这里落库。
type SaleService struct {
	repo           repository.SaleRepository
	customerRepo   repository.CustomerRepository
	influencerRepo repository.InfluencerRepository
	payoutRepo     repository.PayoutRepository
	tierService    *TierService
	queueClient    *queue.Client
}

// NewSaleService 创建销售记录服务
func NewSaleService(
	repo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	influencerRepo repository.InfluencerRepository,
	payoutRepo repository.PayoutRepository,
	tierService *TierService,
	queueClient *queue.Client,
) *SaleService {
	return &SaleService{
		repo:           repo,
		customerRepo:   customerRepo,
		influencerRepo: influencerRepo,
		payoutRepo:     payoutRepo,
		tierService:    tierService,
		queueClient:    queueClient,
	}
}

// SaleCreateInput 录入销售输入
type SaleCreateInput struct {
	CustomerID uint
	StoreID    *uint
	Liters     decimal.Decimal
	Amount     decimal.Decimal
	SoldAt     *time.Time
}

// Create 录入一笔待核实销售
// 归因大使取客户当前绑定关系的快照，后续改绑不影响历史记录。
func (s *SaleService) Create(input SaleCreateInput) (*models.Sale, error) {
	if input.Liters.LessThanOrEqual(decimal.Zero) || input.Amount.IsNegative() {
		return nil, ErrInvalidInput
	}
	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	if customer.Status != constants.CustomerStatusActive {
		return nil, ErrStatusConflict
	}

	soldAt := time.Now()
	if input.SoldAt != nil {
		soldAt = *input.SoldAt
	}

	sale := &models.Sale{
		SaleNo:       generateSaleNo(),
		CustomerID:   customer.ID,
		InfluencerID: customer.InfluencerID,
		StoreID:      input.StoreID,
		Liters:       models.NewMoneyFromDecimal(input.Liters),
		Amount:       models.NewMoneyFromDecimal(input.Amount),
		Status:       constants.SaleStatusPending,
		SoldAt:       soldAt,
	}
	if err := s.repo.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Get 获取销售记录详情
func (s *SaleService) Get(id uint) (*models.Sale, error) {
	sale, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrNotFound
	}
	return sale, nil
}

// List 查询销售记录列表
func (s *SaleService) List(filter repository.SaleListFilter) ([]models.Sale, int64, error) {
	return s.repo.List(filter)
}

// Reject 驳回一笔待核实销售
func (s *SaleService) Reject(id uint, reason string) (*models.Sale, error) {
	sale, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrNotFound
	}
	if sale.Status != constants.SaleStatusPending {
		return nil, ErrSaleAlreadySettled
	}
	sale.Status = constants.SaleStatusRejected
	sale.RejectReason = strings.TrimSpace(reason)
	if err := s.repo.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// VerifyResult 核实销售的结算结果
type VerifyResult struct {
	Sale       *models.Sale          `json:"sale"`
	Outcome    loyalty.SaleOutcome   `json:"outcome"`
	AutoPayout *models.PayoutRequest `json:"auto_payout,omitempty"`
}

// Verify 核实一笔销售并完成结算
// 全链路单事务执行：销售、客户、大使、自动提现要么全部落库要么全部回滚。
func (s *SaleService) Verify(id uint) (*VerifyResult, error) {
	engine, err := s.tierService.Engine()
	if err != nil {
		return nil, err
	}

	var result VerifyResult
	now := time.Now()
	month := now.Format("2006-01")

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		saleRepo := s.repo.WithTx(tx)
		sale, err := saleRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return ErrNotFound
		}
		if sale.Status != constants.SaleStatusPending {
			return ErrSaleAlreadySettled
		}

		customerRepo := s.customerRepo.WithTx(tx)
		customer, err := customerRepo.GetByIDForUpdate(sale.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return ErrNotFound
		}

		input := loyalty.SaleInput{
			SaleAmount:       sale.Amount.Decimal,
			CustomerVolume:   customer.VolumeLiters.Decimal.Add(sale.Liters.Decimal),
			PrevCustomerTier: customer.TierCode,
		}

		var influencer *models.Influencer
		influencerRepo := s.influencerRepo.WithTx(tx)
		if sale.InfluencerID != nil {
			influencer, err = influencerRepo.GetByIDForUpdate(*sale.InfluencerID)
			if err != nil {
				return err
			}
		}
		// 停用大使不再参与结算，客户侧权益不受影响
		if influencer != nil && influencer.Status == constants.InfluencerStatusActive {
			activeClients, err := customerRepo.CountActiveByInfluencer(influencer.ID, now.AddDate(0, 0, -activeClientWindowDays))
			if err != nil {
				return err
			}
			monthly := influencer.MonthlyCommission.Decimal
			if influencer.CommissionMonth != month {
				// 跨账期的首笔结算顺带完成月度清零
				monthly = decimal.Zero
			}
			input.HasInfluencer = true
			input.PrevInfluencerTier = influencer.TierCode
			input.Referrals = influencer.ReferralCount
			input.ActiveClients = int(activeClients)
			input.MonthlyCommission = monthly
			input.PendingBalance = influencer.PendingBalance.Decimal
		} else {
			influencer = nil
		}

		outcome, err := engine.ProcessSale(input)
		if err != nil {
			return err
		}
		result.Outcome = outcome

		sale.Status = constants.SaleStatusVerified
		sale.VerifiedAt = &now
		sale.CashbackAmount = models.NewMoneyFromDecimal(outcome.CashbackAmount)
		sale.CommissionAmount = models.NewMoneyFromDecimal(outcome.CommissionDelta)
		if err := saleRepo.Update(sale); err != nil {
			return err
		}

		customer.VolumeLiters = models.NewMoneyFromDecimal(input.CustomerVolume)
		customer.TierCode = outcome.CustomerTier.Code
		customer.CashbackBalance = models.NewMoneyFromDecimal(customer.CashbackBalance.Decimal.Add(outcome.CashbackAmount))
		customer.LastPurchaseAt = &now
		if err := customerRepo.Update(customer); err != nil {
			return err
		}

		if influencer != nil {
			influencer.TierCode = outcome.InfluencerTier.Code
			influencer.ActiveClientCount = input.ActiveClients
			influencer.TotalSales = models.NewMoneyFromDecimal(influencer.TotalSales.Decimal.Add(sale.Amount.Decimal))
			influencer.MonthlyCommission = models.NewMoneyFromDecimal(outcome.MonthlyCommission)
			influencer.CommissionMonth = month
			influencer.PendingBalance = models.NewMoneyFromDecimal(outcome.PendingBalance)
			if err := influencerRepo.Update(influencer); err != nil {
				return err
			}

			if outcome.Payout.Eligible && outcome.Payout.AutoApproved {
				payout, err := createAutoPayout(s.payoutRepo.WithTx(tx), influencerRepo, influencer, now)
				if err != nil {
					return err
				}
				result.AutoPayout = payout
			}
		}

		result.Sale = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyVerifyOutcome(&result)
	return &result, nil
}

// notifyVerifyOutcome 结算完成后推送通知任务（失败只记日志）
func (s *SaleService) notifyVerifyOutcome(result *VerifyResult) {
	if result == nil || result.Sale == nil {
		return
	}
	outcome := result.Outcome
	if outcome.CustomerTierChanged {
		err := s.queueClient.EnqueueTierPromotionNotify(queue.TierPromotionNotifyPayload{
			Kind:     constants.TierKindCustomer,
			TargetID: result.Sale.CustomerID,
			ToTier:   outcome.CustomerTier.Code,
		})
		if err != nil {
			logger.Warnw("enqueue_tier_promotion_failed", "sale_id", result.Sale.ID, "error", err)
		}
	}
	if outcome.InfluencerTierChanged && result.Sale.InfluencerID != nil {
		err := s.queueClient.EnqueueTierPromotionNotify(queue.TierPromotionNotifyPayload{
			Kind:     constants.TierKindInfluencer,
			TargetID: *result.Sale.InfluencerID,
			ToTier:   outcome.InfluencerTier.Code,
		})
		if err != nil {
			logger.Warnw("enqueue_tier_promotion_failed", "sale_id", result.Sale.ID, "error", err)
		}
	}
	if result.AutoPayout != nil {
		err := s.queueClient.EnqueuePayoutReviewNotify(queue.PayoutReviewNotifyPayload{
			PayoutRequestID: result.AutoPayout.ID,
			Status:          result.AutoPayout.Status,
		})
		if err != nil {
			logger.Warnw("enqueue_payout_notify_failed", "payout_id", result.AutoPayout.ID, "error", err)
		}
	}
}

func generateSaleNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("AQ%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
