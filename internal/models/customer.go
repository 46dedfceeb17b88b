package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户表
// TierCode 由引擎按累计购水量重算，只增不减。
type Customer struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                           // 主键
	Name            string         `gorm:"not null" json:"name"`                                           // 客户姓名
	Phone           string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`             // 手机号
	Email           string         `gorm:"type:varchar(128);index" json:"email,omitempty"`                 // 邮箱
	InfluencerID    *uint          `gorm:"index" json:"influencer_id,omitempty"`                           // 归因大使ID
	TierCode        string         `gorm:"type:varchar(32);not null;index" json:"tier_code"`               // 当前等级代码
	VolumeLiters    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"volume_liters"`     // 累计购水量（升）
	CashbackBalance Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cashback_balance"`  // 累计返现余额
	Status          string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // 状态
	LastPurchaseAt  *time.Time     `gorm:"index" json:"last_purchase_at,omitempty"`                        // 最近购买时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                        // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间

	Influencer *Influencer `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"` // 归因大使
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
