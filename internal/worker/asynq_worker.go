package worker

import (
	"context"
	"encoding/json"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/logger"
	"github.com/aqua-next/internal/provider"
	"github.com/aqua-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskTierPromotionNotify, c.handleTierPromotionNotify)
	mux.HandleFunc(queue.TaskPayoutReviewNotify, c.handlePayoutReviewNotify)
}

func (c *Consumer) handleTierPromotionNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_tier_promotion_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TierPromotionNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_tier_promotion_unmarshal_failed", "error", err)
		return err
	}
	if payload.TargetID == 0 {
		logger.Debugw("worker_tier_promotion_skip_invalid_payload", "target_id", payload.TargetID)
		return nil
	}

	var name, phone string
	switch payload.Kind {
	case constants.TierKindCustomer:
		customer, err := c.CustomerRepo.GetByID(payload.TargetID)
		if err != nil {
			logger.Warnw("worker_tier_promotion_fetch_customer_failed", "customer_id", payload.TargetID, "error", err)
			return err
		}
		if customer == nil {
			logger.Debugw("worker_tier_promotion_skip_customer_not_found", "customer_id", payload.TargetID)
			return nil
		}
		name, phone = customer.Name, customer.Phone
	case constants.TierKindInfluencer:
		influencer, err := c.InfluencerRepo.GetByID(payload.TargetID)
		if err != nil {
			logger.Warnw("worker_tier_promotion_fetch_influencer_failed", "influencer_id", payload.TargetID, "error", err)
			return err
		}
		if influencer == nil {
			logger.Debugw("worker_tier_promotion_skip_influencer_not_found", "influencer_id", payload.TargetID)
			return nil
		}
		name, phone = influencer.Name, influencer.Phone
	default:
		logger.Debugw("worker_tier_promotion_skip_unknown_kind", "kind", payload.Kind)
		return nil
	}

	// 短信网关尚未接入, 先以结构化日志落地通知事件
	logger.Infow("tier_promotion_notified",
		"kind", payload.Kind,
		"target_id", payload.TargetID,
		"name", name,
		"phone", phone,
		"from_tier", payload.FromTier,
		"to_tier", payload.ToTier,
	)
	return nil
}

func (c *Consumer) handlePayoutReviewNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payout_review_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PayoutReviewNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payout_review_unmarshal_failed", "error", err)
		return err
	}
	if payload.PayoutRequestID == 0 {
		logger.Debugw("worker_payout_review_skip_invalid_payload", "payout_request_id", payload.PayoutRequestID)
		return nil
	}
	payout, err := c.PayoutRepo.GetByID(payload.PayoutRequestID)
	if err != nil {
		logger.Warnw("worker_payout_review_fetch_failed", "payout_request_id", payload.PayoutRequestID, "error", err)
		return err
	}
	if payout == nil {
		logger.Debugw("worker_payout_review_skip_not_found", "payout_request_id", payload.PayoutRequestID)
		return nil
	}
	influencer, err := c.InfluencerRepo.GetByID(payout.InfluencerID)
	if err != nil {
		logger.Warnw("worker_payout_review_fetch_influencer_failed", "influencer_id", payout.InfluencerID, "error", err)
		return err
	}
	if influencer == nil {
		logger.Debugw("worker_payout_review_skip_influencer_not_found", "influencer_id", payout.InfluencerID)
		return nil
	}

	logger.Infow("payout_review_notified",
		"payout_request_id", payout.ID,
		"influencer_id", influencer.ID,
		"influencer_name", influencer.Name,
		"phone", influencer.Phone,
		"status", payload.Status,
		"amount", payout.Amount.String(),
		"bank_reference", payout.BankReference,
	)
	return nil
}
