package models

import (
	"time"

	"gorm.io/gorm"
)

// Sale 销售记录表
// 核实（verified）是引擎结算的唯一触发点，状态只沿 pending → verified/rejected 流转。
type Sale struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                           // 主键
	SaleNo           string         `gorm:"uniqueIndex;not null" json:"sale_no"`                            // 销售编号
	CustomerID       uint           `gorm:"not null;index" json:"customer_id"`                              // 客户ID
	InfluencerID     *uint          `gorm:"index" json:"influencer_id,omitempty"`                           // 归因大使ID
	StoreID          *uint          `gorm:"index" json:"store_id,omitempty"`                                // 门店ID
	Liters           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"liters"`            // 购水量（升）
	Amount           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`            // 销售金额
	CashbackAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cashback_amount"`   // 本笔产生的返现
	CommissionAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission_amount"` // 本笔入账佣金
	Status           string         `gorm:"type:varchar(20);not null;index" json:"status"`                  // pending/verified/rejected
	RejectReason     string         `gorm:"type:varchar(255)" json:"reject_reason,omitempty"`               // 驳回原因
	SoldAt           time.Time      `gorm:"index;not null" json:"sold_at"`                                  // 销售时间
	VerifiedAt       *time.Time     `gorm:"index" json:"verified_at,omitempty"`                             // 核实时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                        // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间

	Customer   Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`     // 客户
	Influencer *Influencer `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"` // 归因大使
	Store      *Store      `gorm:"foreignKey:StoreID" json:"store,omitempty"`           // 门店
}

// TableName 指定表名
func (Sale) TableName() string {
	return "sales"
}
