package constants

// 销售记录状态常量
const (
	SaleStatusPending  = "pending"
	SaleStatusVerified = "verified"
	SaleStatusRejected = "rejected"
)

// 客户状态常量
const (
	CustomerStatusActive   = "active"
	CustomerStatusDisabled = "disabled"
)

// 推广大使状态常量
const (
	InfluencerStatusActive   = "active"
	InfluencerStatusInactive = "inactive"
)

// 门店状态常量
const (
	StoreStatusActive      = "active"
	StoreStatusInactive    = "inactive"
	StoreStatusMaintenance = "maintenance"
)

// 提现申请状态常量
const (
	PayoutStatusPending  = "pending"
	PayoutStatusApproved = "approved"
	PayoutStatusRejected = "rejected"
)

// 提现审核动作常量
const (
	PayoutActionApprove = "approve"
	PayoutActionReject  = "reject"
)

// 提现结算周期常量
const (
	PayoutFrequencyWeekly   = "weekly"
	PayoutFrequencyBiweekly = "biweekly"
	PayoutFrequencyMonthly  = "monthly"
	PayoutFrequencyOnDemand = "on_demand"
)

// 等级阶梯类型常量
const (
	TierKindCustomer   = "customer"
	TierKindInfluencer = "influencer"
)

// 等级代码常量（入门级门槛为零，必须存在）
const (
	TierCodeLead     = "lead"
	TierCodeSilver   = "silver"
	TierCodeGold     = "gold"
	TierCodePlatinum = "platinum"
)

// 设置键常量
const (
	SettingKeySiteConfig       = "site_config"
	SettingKeyCommissionConfig = "commission_config"
)

// 异步任务名称常量
const (
	TaskTierPromotionNotify = "loyalty:tier_promotion_notify"
	TaskPayoutReviewNotify  = "loyalty:payout_review_notify"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)
