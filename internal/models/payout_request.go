package models

import (
	"time"

	"gorm.io/gorm"
)

// PayoutRequest 提现申请表
// 审批为终态操作：approved/rejected 之后不再流转。
type PayoutRequest struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                // 主键
	InfluencerID  uint           `gorm:"not null;index" json:"influencer_id"`                 // 大使ID
	Amount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 申请金额
	Status        string         `gorm:"type:varchar(20);not null;index" json:"status"`       // pending/approved/rejected
	AutoApproved  bool           `gorm:"not null;default:false" json:"auto_approved"`         // 是否自动审批
	BankReference string         `gorm:"type:varchar(64)" json:"bank_reference,omitempty"`    // 银行打款流水号
	RejectReason  string         `gorm:"type:varchar(255)" json:"reject_reason,omitempty"`    // 驳回原因
	ProcessedBy   *uint          `gorm:"index" json:"processed_by,omitempty"`                 // 审批管理员ID
	ProcessedAt   *time.Time     `gorm:"index" json:"processed_at,omitempty"`                 // 审批时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	Influencer Influencer `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"` // 大使
}

// TableName 指定表名
func (PayoutRequest) TableName() string {
	return "payout_requests"
}
