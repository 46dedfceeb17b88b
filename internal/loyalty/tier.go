package loyalty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier 单个忠诚度等级的业务数据
// 客户阶梯以累计购水量（升）为门槛；大使阶梯以推荐数与活跃客户数双门槛。
type Tier struct {
	Code                 string          // 等级代码
	Name                 string          // 展示名称
	Rank                 int             // 阶梯内排序，入门级为 0
	MinVolumeLiters      decimal.Decimal // 客户阶梯：累计升数门槛
	MinReferrals         int             // 大使阶梯：推荐数门槛
	MinActiveClients     int             // 大使阶梯：活跃客户数门槛
	CashbackPercent      decimal.Decimal // 返现比例（百分比）
	CommissionMultiplier decimal.Decimal // 佣金倍率
}

// Ladder 有序等级阶梯（按 Rank 升序）
type Ladder []Tier

// SortByRank 返回按 Rank 升序排列的副本
func (l Ladder) SortByRank() Ladder {
	sorted := append(Ladder(nil), l...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted
}

// Entry 返回入门级（最低 Rank）
func (l Ladder) Entry() (Tier, error) {
	if len(l) == 0 {
		return Tier{}, fmt.Errorf("%w: 阶梯为空", ErrLadderInvalid)
	}
	return l.SortByRank()[0], nil
}

// Find 按代码查找等级
func (l Ladder) Find(code string) (Tier, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for _, tier := range l {
		if tier.Code == normalized {
			return tier, true
		}
	}
	return Tier{}, false
}

// ValidateCustomerLadder 校验客户阶梯：升数门槛严格递增，入门级门槛为零
func ValidateCustomerLadder(l Ladder) error {
	if err := validateLadderShape(l); err != nil {
		return err
	}
	sorted := l.SortByRank()
	if !sorted[0].MinVolumeLiters.IsZero() {
		return fmt.Errorf("%w: 入门级升数门槛必须为 0", ErrLadderInvalid)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinVolumeLiters.LessThanOrEqual(sorted[i-1].MinVolumeLiters) {
			return fmt.Errorf("%w: 等级 %s 升数门槛未严格递增", ErrLadderInvalid, sorted[i].Code)
		}
	}
	return nil
}

// ValidateInfluencerLadder 校验大使阶梯：推荐数与活跃客户数门槛均严格递增
func ValidateInfluencerLadder(l Ladder) error {
	if err := validateLadderShape(l); err != nil {
		return err
	}
	sorted := l.SortByRank()
	if sorted[0].MinReferrals != 0 || sorted[0].MinActiveClients != 0 {
		return fmt.Errorf("%w: 入门级网络门槛必须为 0", ErrLadderInvalid)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinReferrals <= sorted[i-1].MinReferrals {
			return fmt.Errorf("%w: 等级 %s 推荐数门槛未严格递增", ErrLadderInvalid, sorted[i].Code)
		}
		if sorted[i].MinActiveClients <= sorted[i-1].MinActiveClients {
			return fmt.Errorf("%w: 等级 %s 活跃客户门槛未严格递增", ErrLadderInvalid, sorted[i].Code)
		}
	}
	return nil
}

func validateLadderShape(l Ladder) error {
	if len(l) == 0 {
		return fmt.Errorf("%w: 阶梯为空", ErrLadderInvalid)
	}
	seenCodes := make(map[string]struct{}, len(l))
	seenRanks := make(map[int]struct{}, len(l))
	for _, tier := range l {
		code := strings.TrimSpace(tier.Code)
		if code == "" {
			return fmt.Errorf("%w: 等级代码为空", ErrLadderInvalid)
		}
		if _, ok := seenCodes[code]; ok {
			return fmt.Errorf("%w: 等级代码重复 %s", ErrLadderInvalid, code)
		}
		seenCodes[code] = struct{}{}
		if _, ok := seenRanks[tier.Rank]; ok {
			return fmt.Errorf("%w: 等级排序重复 %d", ErrLadderInvalid, tier.Rank)
		}
		seenRanks[tier.Rank] = struct{}{}
		if tier.CashbackPercent.IsNegative() {
			return fmt.Errorf("%w: 等级 %s 返现比例为负", ErrLadderInvalid, code)
		}
		if tier.CommissionMultiplier.IsNegative() {
			return fmt.Errorf("%w: 等级 %s 佣金倍率为负", ErrLadderInvalid, code)
		}
	}
	return nil
}
