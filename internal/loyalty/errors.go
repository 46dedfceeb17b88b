package loyalty

import "errors"

var (
	// ErrConfigInvalid 佣金配置不满足约束
	ErrConfigInvalid = errors.New("佣金配置不合法")
	// ErrLadderInvalid 等级阶梯不满足约束
	ErrLadderInvalid = errors.New("等级阶梯不合法")
	// ErrInvalidMetric 输入指标不合法（负数量/负金额）
	ErrInvalidMetric = errors.New("输入指标不合法")
	// ErrTierUnknown 等级代码在阶梯中不存在
	ErrTierUnknown = errors.New("未知等级")
)
