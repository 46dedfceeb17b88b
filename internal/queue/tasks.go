package queue

import (
	"encoding/json"

	"github.com/aqua-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskTierPromotionNotify 等级晋升通知任务
	TaskTierPromotionNotify = constants.TaskTierPromotionNotify
	// TaskPayoutReviewNotify 提现审批结果通知任务
	TaskPayoutReviewNotify = constants.TaskPayoutReviewNotify
)

// TierPromotionNotifyPayload 等级晋升通知载荷
// Kind 区分客户与大使晋升。
type TierPromotionNotifyPayload struct {
	Kind     string `json:"kind"`
	TargetID uint   `json:"target_id"`
	FromTier string `json:"from_tier"`
	ToTier   string `json:"to_tier"`
}

// PayoutReviewNotifyPayload 提现审批通知载荷
type PayoutReviewNotifyPayload struct {
	PayoutRequestID uint   `json:"payout_request_id"`
	Status          string `json:"status"`
}

// NewTierPromotionNotifyTask 创建等级晋升通知任务
func NewTierPromotionNotifyTask(payload TierPromotionNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTierPromotionNotify, body), nil
}

// NewPayoutReviewNotifyTask 创建提现审批通知任务
func NewPayoutReviewNotifyTask(payload PayoutReviewNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPayoutReviewNotify, body), nil
}
