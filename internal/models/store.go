package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 门店表
type Store struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                           // 主键
	Name      string         `gorm:"not null" json:"name"`                                           // 门店名称
	City      string         `gorm:"type:varchar(64);not null;index" json:"city"`                    // 城市
	Address   string         `gorm:"type:varchar(255);not null" json:"address"`                      // 地址
	Phone     string         `gorm:"type:varchar(32)" json:"phone,omitempty"`                        // 联系电话
	Lat       float64        `gorm:"not null;default:0" json:"lat"`                                  // 纬度
	Lng       float64        `gorm:"not null;default:0" json:"lng"`                                  // 经度
	Status    string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // active/inactive/maintenance
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                              // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
