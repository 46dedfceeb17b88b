package service

import "errors"

// 业务错误哨兵，供 handler 映射为响应码
var (
	ErrNotFound               = errors.New("资源不存在")
	ErrInvalidInput           = errors.New("参数不合法")
	ErrInvalidCredentials     = errors.New("用户名或密码错误")
	ErrInvalidPassword        = errors.New("密码错误")
	ErrWeakPassword           = errors.New("密码强度不足")
	ErrPhoneTaken             = errors.New("手机号已被占用")
	ErrReferralCodeInvalid    = errors.New("推荐码无效")
	ErrStatusConflict         = errors.New("状态不允许该操作")
	ErrSaleAlreadySettled     = errors.New("销售记录已结算")
	ErrInfluencerInactive     = errors.New("大使已停用")
	ErrPayoutBelowThreshold   = errors.New("余额未达提现阈值")
	ErrPayoutAlreadyPending   = errors.New("存在待审批的提现申请")
	ErrPayoutAlreadyProcessed = errors.New("提现申请已审批")
	ErrInsufficientBalance    = errors.New("可提现余额不足")
	ErrCommissionConfig       = errors.New("佣金配置不合法")
	ErrLadderConfig           = errors.New("等级阶梯配置不合法")
)
