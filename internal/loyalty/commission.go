package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var percentBase = decimal.NewFromInt(100)

// CommissionForSale 计算单笔已核实销售的佣金
// 公式：amount * baseRate * tierMultiplier / 100，保留 2 位小数。
// 活跃客户数低于配置下限时强制为零（不活跃大使不产生佣金）。
func CommissionForSale(saleAmount decimal.Decimal, tierCode string, activeClients int, settings Settings) (decimal.Decimal, error) {
	if saleAmount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: 销售金额为负 %s", ErrInvalidMetric, saleAmount)
	}
	if activeClients < 0 {
		return decimal.Zero, fmt.Errorf("%w: 活跃客户数为负 %d", ErrInvalidMetric, activeClients)
	}
	multiplier, ok := settings.TierMultipliers[tierCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrTierUnknown, tierCode)
	}
	if activeClients < settings.MinActiveClients {
		return decimal.Zero, nil
	}
	commission := saleAmount.
		Mul(settings.BaseRatePercent).
		Mul(multiplier).
		Div(percentBase).
		Round(2)
	return commission, nil
}

// ClampMonthly 将佣金增量并入月度累计并按上限截断
// 返回实际入账增量与新的月度累计；超出部分直接不入账而非整笔拒绝。
func ClampMonthly(currentTotal, delta, cap decimal.Decimal) (credited, newTotal decimal.Decimal) {
	if delta.IsNegative() || delta.IsZero() {
		return decimal.Zero, currentTotal
	}
	if currentTotal.GreaterThanOrEqual(cap) {
		return decimal.Zero, currentTotal
	}
	room := cap.Sub(currentTotal)
	credited = delta
	if credited.GreaterThan(room) {
		credited = room
	}
	credited = credited.Round(2)
	return credited, currentTotal.Add(credited).Round(2)
}
