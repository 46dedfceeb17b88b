package models

import (
	"time"

	"gorm.io/gorm"
)

// TierLevel 等级阶梯表
// Kind 区分客户阶梯与大使阶梯，同一 Kind 内 Code 与 Rank 唯一。
type TierLevel struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                                 // 主键
	Kind                 string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_tier_kind_code" json:"kind"` // customer/influencer
	Code                 string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_tier_kind_code" json:"code"` // 等级代码
	Name                 string         `gorm:"not null" json:"name"`                                                 // 展示名称
	Rank                 int            `gorm:"not null;default:0;index" json:"rank"`                                 // 等级序号（入门为 0）
	MinVolumeLiters      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_volume_liters"`       // 客户阶梯：最低累计购水量
	MinReferrals         int            `gorm:"not null;default:0" json:"min_referrals"`                              // 大使阶梯：最低推荐数
	MinActiveClients     int            `gorm:"not null;default:0" json:"min_active_clients"`                         // 大使阶梯：最低活跃客户数
	CashbackPercent      Money          `gorm:"type:decimal(10,2);not null;default:0" json:"cashback_percent"`        // 返现比例（百分比）
	CommissionMultiplier Money          `gorm:"type:decimal(10,2);not null;default:1" json:"commission_multiplier"`   // 佣金倍率
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                              // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                                              // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                                       // 软删除时间
}

// TableName 指定表名
func (TierLevel) TableName() string {
	return "tier_levels"
}
