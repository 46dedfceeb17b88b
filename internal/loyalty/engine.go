package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine 忠诚度与佣金计算引擎门面
// 纯同步计算：不持有存储，输入输出完全由调用方传递与持久化。
type Engine struct {
	customerLadder   Ladder
	influencerLadder Ladder
	settings         Settings
}

// NewEngine 创建引擎并校验阶梯与配置
// 配置不合法时直接拒绝，不产生带缺省值的引擎实例。
func NewEngine(customerLadder, influencerLadder Ladder, settings Settings) (*Engine, error) {
	if err := ValidateCustomerLadder(customerLadder); err != nil {
		return nil, err
	}
	if err := ValidateInfluencerLadder(influencerLadder); err != nil {
		return nil, err
	}
	if err := settings.Validate(influencerLadder); err != nil {
		return nil, err
	}
	return &Engine{
		customerLadder:   customerLadder.SortByRank(),
		influencerLadder: influencerLadder.SortByRank(),
		settings:         settings,
	}, nil
}

// Settings 返回引擎当前配置
func (e *Engine) Settings() Settings {
	return e.settings
}

// CustomerLadder 返回客户等级阶梯
func (e *Engine) CustomerLadder() Ladder {
	return e.customerLadder
}

// InfluencerLadder 返回大使等级阶梯
func (e *Engine) InfluencerLadder() Ladder {
	return e.influencerLadder
}

// SaleInput 处理单笔已核实销售所需的全部输入
// 指标均为含本笔销售后的最新值；无归因大使时 HasInfluencer 为 false。
type SaleInput struct {
	SaleAmount         decimal.Decimal // 销售金额
	CustomerVolume     decimal.Decimal // 客户累计购水量（升）
	PrevCustomerTier   string          // 客户当前等级代码
	HasInfluencer      bool            // 是否归因到大使
	PrevInfluencerTier string          // 大使当前等级代码
	Referrals          int             // 大使推荐数
	ActiveClients      int             // 大使活跃客户数
	MonthlyCommission  decimal.Decimal // 大使本账期已累计佣金
	PendingBalance     decimal.Decimal // 大使当前待提现余额
}

// SaleOutcome 单笔销售处理结果
// 引擎只描述发生了什么，展示与通知由调用方决定。
type SaleOutcome struct {
	CustomerTier          Tier            `json:"customer_tier"`
	CustomerTierChanged   bool            `json:"customer_tier_changed"`
	CashbackAmount        decimal.Decimal `json:"cashback_amount"`
	InfluencerTier        Tier            `json:"influencer_tier"`
	InfluencerTierChanged bool            `json:"influencer_tier_changed"`
	CommissionDelta       decimal.Decimal `json:"commission_delta"`
	MonthlyCommission     decimal.Decimal `json:"monthly_commission"`
	PendingBalance        decimal.Decimal `json:"pending_balance"`
	Payout                PayoutDecision  `json:"payout"`
}

// ProcessSale 处理一笔已核实销售
// 顺序：客户定级 → 大使定级 → 佣金计算与月度封顶 → 提现资格判定。
func (e *Engine) ProcessSale(input SaleInput) (SaleOutcome, error) {
	if input.SaleAmount.IsNegative() {
		return SaleOutcome{}, fmt.Errorf("%w: 销售金额为负 %s", ErrInvalidMetric, input.SaleAmount)
	}

	customerTier, err := ClassifyVolume(input.CustomerVolume, e.customerLadder)
	if err != nil {
		return SaleOutcome{}, err
	}
	outcome := SaleOutcome{
		CustomerTier:        customerTier,
		CustomerTierChanged: customerTier.Code != input.PrevCustomerTier,
		CashbackAmount: input.SaleAmount.
			Mul(customerTier.CashbackPercent).
			Div(percentBase).
			Round(2),
		CommissionDelta:   decimal.Zero,
		MonthlyCommission: input.MonthlyCommission,
		PendingBalance:    input.PendingBalance,
	}
	if !input.HasInfluencer {
		return outcome, nil
	}

	influencerTier, err := ClassifyNetwork(input.Referrals, input.ActiveClients, e.influencerLadder)
	if err != nil {
		return SaleOutcome{}, err
	}
	outcome.InfluencerTier = influencerTier
	outcome.InfluencerTierChanged = influencerTier.Code != input.PrevInfluencerTier

	commission, err := CommissionForSale(input.SaleAmount, influencerTier.Code, input.ActiveClients, e.settings)
	if err != nil {
		return SaleOutcome{}, err
	}
	credited, newTotal := ClampMonthly(input.MonthlyCommission, commission, e.settings.MonthlyCap)
	outcome.CommissionDelta = credited
	outcome.MonthlyCommission = newTotal
	outcome.PendingBalance = input.PendingBalance.Add(credited).Round(2)
	outcome.Payout = EvaluatePayout(outcome.PendingBalance, e.settings)
	return outcome, nil
}
