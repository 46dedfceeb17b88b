package loyalty

import "github.com/shopspring/decimal"

// PayoutDecision 提现资格判定结果
type PayoutDecision struct {
	Eligible     bool `json:"eligible"`
	AutoApproved bool `json:"auto_approved"`
}

// EvaluatePayout 判定累计余额是否可提现
// 余额低于阈值不可提现；自动审批仅适用于阈值以内的余额，
// 更大的金额一律人工复核以控制自动打款风险。
func EvaluatePayout(pendingBalance decimal.Decimal, settings Settings) PayoutDecision {
	if pendingBalance.LessThan(settings.PayoutThreshold) {
		return PayoutDecision{}
	}
	return PayoutDecision{
		Eligible:     true,
		AutoApproved: settings.AutoApproval && pendingBalance.LessThanOrEqual(settings.PayoutThreshold),
	}
}
