package service

import (
	"strings"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/logger"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/queue"
	"github.com/aqua-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayoutService 提现申请业务服务
// 余额在申请时冻结扣减，驳回即退回，审批为终态。
type PayoutService struct {
	repo           repository.PayoutRepository
	influencerRepo repository.InfluencerRepository
	settingService *SettingService
	queueClient    *queue.Client
}

// NewPayoutService 创建提现服务
func NewPayoutService(
	repo repository.PayoutRepository,
	influencerRepo repository.InfluencerRepository,
	settingService *SettingService,
	queueClient *queue.Client,
) *PayoutService {
	return &PayoutService{
		repo:           repo,
		influencerRepo: influencerRepo,
		settingService: settingService,
		queueClient:    queueClient,
	}
}

// Get 获取提现申请详情
func (s *PayoutService) Get(id uint) (*models.PayoutRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	return req, nil
}

// List 查询提现申请列表
func (s *PayoutService) List(filter repository.PayoutListFilter) ([]models.PayoutRequest, int64, error) {
	return s.repo.List(filter)
}

// Request 为大使发起提现申请
// 金额为空时默认申请全部余额；余额需达阈值且无在途申请。
func (s *PayoutService) Request(influencerID uint, amount *decimal.Decimal) (*models.PayoutRequest, error) {
	setting, err := s.settingService.GetCommissionSetting()
	if err != nil {
		return nil, err
	}
	loyaltySettings := setting.ToLoyaltySettings()

	var req *models.PayoutRequest
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		influencerRepo := s.influencerRepo.WithTx(tx)
		influencer, err := influencerRepo.GetByIDForUpdate(influencerID)
		if err != nil {
			return err
		}
		if influencer == nil {
			return ErrNotFound
		}

		pending, err := s.repo.WithTx(tx).HasPendingByInfluencer(influencerID)
		if err != nil {
			return err
		}
		if pending {
			return ErrPayoutAlreadyPending
		}

		balance := influencer.PendingBalance.Decimal
		if balance.LessThan(loyaltySettings.PayoutThreshold) {
			return ErrPayoutBelowThreshold
		}

		requested := balance
		if amount != nil {
			requested = amount.Round(2)
		}
		if requested.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidInput
		}
		if requested.GreaterThan(balance) {
			return ErrInsufficientBalance
		}

		influencer.PendingBalance = models.NewMoneyFromDecimal(balance.Sub(requested))
		if err := influencerRepo.Update(influencer); err != nil {
			return err
		}

		req = &models.PayoutRequest{
			InfluencerID: influencerID,
			Amount:       models.NewMoneyFromDecimal(requested),
			Status:       constants.PayoutStatusPending,
		}
		return s.repo.WithTx(tx).Create(req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Review 审批提现申请
// action 只接受 approve/reject；审批后的申请不可再次流转。
func (s *PayoutService) Review(id uint, adminID uint, action, reason string) (*models.PayoutRequest, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	if action != constants.PayoutActionApprove && action != constants.PayoutActionReject {
		return nil, ErrInvalidInput
	}
	if action == constants.PayoutActionReject && strings.TrimSpace(reason) == "" {
		return nil, ErrInvalidInput
	}

	var reviewed *models.PayoutRequest
	now := time.Now()
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		payoutRepo := s.repo.WithTx(tx)
		req, err := payoutRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrNotFound
		}
		if req.Status != constants.PayoutStatusPending {
			return ErrPayoutAlreadyProcessed
		}

		influencerRepo := s.influencerRepo.WithTx(tx)
		influencer, err := influencerRepo.GetByIDForUpdate(req.InfluencerID)
		if err != nil {
			return err
		}
		if influencer == nil {
			return ErrNotFound
		}

		req.ProcessedBy = &adminID
		req.ProcessedAt = &now
		switch action {
		case constants.PayoutActionApprove:
			req.Status = constants.PayoutStatusApproved
			req.BankReference = newBankReference()
			influencer.TotalPaid = models.NewMoneyFromDecimal(influencer.TotalPaid.Decimal.Add(req.Amount.Decimal))
		case constants.PayoutActionReject:
			req.Status = constants.PayoutStatusRejected
			req.RejectReason = strings.TrimSpace(reason)
			// 申请时冻结的余额退回
			influencer.PendingBalance = models.NewMoneyFromDecimal(influencer.PendingBalance.Decimal.Add(req.Amount.Decimal))
		}

		if err := influencerRepo.Update(influencer); err != nil {
			return err
		}
		if err := payoutRepo.Update(req); err != nil {
			return err
		}
		reviewed = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueuePayoutReviewNotify(queue.PayoutReviewNotifyPayload{
		PayoutRequestID: reviewed.ID,
		Status:          reviewed.Status,
	}); err != nil {
		logger.Warnw("enqueue_payout_notify_failed", "payout_id", reviewed.ID, "error", err)
	}
	return reviewed, nil
}

// createAutoPayout 自动审批路径：整笔余额直接生成已打款申请
// 调用方保证处于事务内且大使行已加锁。
func createAutoPayout(
	payoutRepo repository.PayoutRepository,
	influencerRepo repository.InfluencerRepository,
	influencer *models.Influencer,
	now time.Time,
) (*models.PayoutRequest, error) {
	pending, err := payoutRepo.HasPendingByInfluencer(influencer.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		// 已有在途申请时不再自动发起，留给人工处理
		return nil, nil
	}

	amount := influencer.PendingBalance.Decimal
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	req := &models.PayoutRequest{
		InfluencerID:  influencer.ID,
		Amount:        models.NewMoneyFromDecimal(amount),
		Status:        constants.PayoutStatusApproved,
		AutoApproved:  true,
		BankReference: newBankReference(),
		ProcessedAt:   &now,
	}
	if err := payoutRepo.Create(req); err != nil {
		return nil, err
	}

	influencer.PendingBalance = models.NewMoneyFromDecimal(decimal.Zero)
	influencer.TotalPaid = models.NewMoneyFromDecimal(influencer.TotalPaid.Decimal.Add(amount))
	if err := influencerRepo.Update(influencer); err != nil {
		return nil, err
	}
	return req, nil
}

func newBankReference() string {
	return "AQP-" + strings.ToUpper(uuid.NewString()[:18])
}
