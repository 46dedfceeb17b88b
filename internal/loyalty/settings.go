package loyalty

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Settings 佣金与提现的全局配置
// 比例均以百分比表达（基数 100），金额使用 decimal 保证货币精度。
type Settings struct {
	BaseRatePercent  decimal.Decimal            // 基础佣金比例
	TierMultipliers  map[string]decimal.Decimal // 每等级佣金倍率，键为等级代码
	MinActiveClients int                        // 产生佣金所需的最低活跃客户数
	PayoutThreshold  decimal.Decimal            // 最低可提现余额
	MonthlyCap       decimal.Decimal            // 单个大使的月度佣金上限
	PayoutFrequency  string                     // 结算周期
	AutoApproval     bool                       // 阈值内提现自动审批
}

// Validate 校验配置约束：倍率表与阶梯一一对应，cap ≥ threshold ≥ 0
// 校验失败时引擎拒绝计算，不做静默兜底。
func (s Settings) Validate(ladder Ladder) error {
	if s.BaseRatePercent.IsNegative() {
		return fmt.Errorf("%w: 基础佣金比例为负", ErrConfigInvalid)
	}
	if s.MinActiveClients < 0 {
		return fmt.Errorf("%w: 最低活跃客户数为负", ErrConfigInvalid)
	}
	if s.PayoutThreshold.IsNegative() {
		return fmt.Errorf("%w: 提现阈值为负", ErrConfigInvalid)
	}
	if s.MonthlyCap.LessThan(s.PayoutThreshold) {
		return fmt.Errorf("%w: 月度上限低于提现阈值", ErrConfigInvalid)
	}
	if len(s.TierMultipliers) != len(ladder) {
		return fmt.Errorf("%w: 倍率表条目数 %d 与阶梯等级数 %d 不一致", ErrConfigInvalid, len(s.TierMultipliers), len(ladder))
	}
	for _, tier := range ladder {
		multiplier, ok := s.TierMultipliers[tier.Code]
		if !ok {
			return fmt.Errorf("%w: 等级 %s 缺少佣金倍率", ErrConfigInvalid, tier.Code)
		}
		if multiplier.IsNegative() {
			return fmt.Errorf("%w: 等级 %s 佣金倍率为负", ErrConfigInvalid, tier.Code)
		}
	}
	switch strings.TrimSpace(s.PayoutFrequency) {
	case "weekly", "biweekly", "monthly", "on_demand":
	default:
		return fmt.Errorf("%w: 结算周期 %q 不受支持", ErrConfigInvalid, s.PayoutFrequency)
	}
	return nil
}
