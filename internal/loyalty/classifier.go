package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ClassifyVolume 按累计购水量（升）归档客户等级
// 从最高门槛向下匹配，等于门槛即满足；全部未达标时返回入门级。
func ClassifyVolume(volumeLiters decimal.Decimal, ladder Ladder) (Tier, error) {
	if volumeLiters.IsNegative() {
		return Tier{}, fmt.Errorf("%w: 累计升数为负 %s", ErrInvalidMetric, volumeLiters)
	}
	sorted := ladder.SortByRank()
	if len(sorted) == 0 {
		return Tier{}, fmt.Errorf("%w: 阶梯为空", ErrLadderInvalid)
	}
	for i := len(sorted) - 1; i > 0; i-- {
		if volumeLiters.GreaterThanOrEqual(sorted[i].MinVolumeLiters) {
			return sorted[i], nil
		}
	}
	return sorted[0], nil
}

// ClassifyNetwork 按推荐数与活跃客户数归档大使等级
// 两项门槛需同时满足，单项达标不晋级；全部未达标时返回入门级。
func ClassifyNetwork(referrals, activeClients int, ladder Ladder) (Tier, error) {
	if referrals < 0 {
		return Tier{}, fmt.Errorf("%w: 推荐数为负 %d", ErrInvalidMetric, referrals)
	}
	if activeClients < 0 {
		return Tier{}, fmt.Errorf("%w: 活跃客户数为负 %d", ErrInvalidMetric, activeClients)
	}
	sorted := ladder.SortByRank()
	if len(sorted) == 0 {
		return Tier{}, fmt.Errorf("%w: 阶梯为空", ErrLadderInvalid)
	}
	for i := len(sorted) - 1; i > 0; i-- {
		if referrals >= sorted[i].MinReferrals && activeClients >= sorted[i].MinActiveClients {
			return sorted[i], nil
		}
	}
	return sorted[0], nil
}
