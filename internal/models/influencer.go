package models

import (
	"time"

	"gorm.io/gorm"
)

// Influencer 推广大使表
// 佣金指标按月归零：CommissionMonth 记录 MonthlyCommission 所属账期。
type Influencer struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                            // 主键
	Name              string         `gorm:"not null" json:"name"`                                            // 大使姓名
	Phone             string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`              // 手机号
	Email             string         `gorm:"type:varchar(128);index" json:"email,omitempty"`                  // 邮箱
	ReferralCode      string         `gorm:"type:varchar(32);not null;uniqueIndex" json:"referral_code"`      // 推荐码
	TierCode          string         `gorm:"type:varchar(32);not null;index" json:"tier_code"`                // 当前等级代码
	ReferralCount     int            `gorm:"not null;default:0" json:"referral_count"`                        // 累计推荐客户数
	ActiveClientCount int            `gorm:"not null;default:0" json:"active_client_count"`                   // 活跃客户数
	TotalSales        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_sales"`        // 归因销售总额
	MonthlyCommission Money          `gorm:"type:decimal(20,2);not null;default:0" json:"monthly_commission"` // 本账期累计佣金
	CommissionMonth   string         `gorm:"type:varchar(7);not null;default:''" json:"commission_month"`     // 账期（YYYY-MM）
	PendingBalance    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"pending_balance"`    // 待提现余额
	TotalPaid         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_paid"`         // 历史已打款总额
	Status            string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`  // 状态
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间
}

// TableName 指定表名
func (Influencer) TableName() string {
	return "influencers"
}
