package repository

import (
	"errors"
	"strings"

	"github.com/aqua-next/internal/models"

	"gorm.io/gorm"
)

// TierRepository 等级阶梯数据访问接口
type TierRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) TierRepository

	ListByKind(kind string) ([]models.TierLevel, error)
	GetByKindAndCode(kind, code string) (*models.TierLevel, error)
	Create(level *models.TierLevel) error
	Update(level *models.TierLevel) error
	ReplaceLadder(kind string, levels []models.TierLevel) error
}

// GormTierRepository GORM 实现
type GormTierRepository struct {
	db *gorm.DB
}

// NewTierRepository 创建等级阶梯仓库
func NewTierRepository(db *gorm.DB) *GormTierRepository {
	return &GormTierRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTierRepository) WithTx(tx *gorm.DB) TierRepository {
	if tx == nil {
		return r
	}
	return &GormTierRepository{db: tx}
}

// Transaction 执行事务
func (r *GormTierRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByKind 获取指定类型的完整阶梯（按序号升序）
func (r *GormTierRepository) ListByKind(kind string) ([]models.TierLevel, error) {
	levels := make([]models.TierLevel, 0)
	err := r.db.Where("kind = ?", strings.TrimSpace(kind)).
		Order("rank asc").
		Find(&levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}

// GetByKindAndCode 按类型与代码获取等级
func (r *GormTierRepository) GetByKindAndCode(kind, code string) (*models.TierLevel, error) {
	var level models.TierLevel
	err := r.db.Where("kind = ? AND code = ?", strings.TrimSpace(kind), strings.TrimSpace(code)).
		First(&level).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

// Create 创建等级
func (r *GormTierRepository) Create(level *models.TierLevel) error {
	return r.db.Create(level).Error
}

// Update 更新等级
func (r *GormTierRepository) Update(level *models.TierLevel) error {
	return r.db.Save(level).Error
}

// ReplaceLadder 整体替换一个类型的阶梯
// 阶梯必须作为整体校验后落库，单行修改容易破坏单调性。
func (r *GormTierRepository) ReplaceLadder(kind string, levels []models.TierLevel) error {
	kind = strings.TrimSpace(kind)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("kind = ?", kind).Delete(&models.TierLevel{}).Error; err != nil {
			return err
		}
		for i := range levels {
			levels[i].ID = 0
			levels[i].Kind = kind
			if err := tx.Create(&levels[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
