package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/aqua-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InfluencerRepository 推广大使数据访问接口
type InfluencerRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) InfluencerRepository

	GetByID(id uint) (*models.Influencer, error)
	GetByIDForUpdate(id uint) (*models.Influencer, error)
	GetByReferralCode(code string) (*models.Influencer, error)
	Create(influencer *models.Influencer) error
	Update(influencer *models.Influencer) error
	Delete(id uint) error
	List(filter InfluencerListFilter) ([]models.Influencer, int64, error)
	UpdateStatus(id uint, status string, updatedAt time.Time) error
	ResetMonthlyCommission(month string, now time.Time) (int64, error)
}

// GormInfluencerRepository GORM 实现
type GormInfluencerRepository struct {
	db *gorm.DB
}

// NewInfluencerRepository 创建大使仓库
func NewInfluencerRepository(db *gorm.DB) *GormInfluencerRepository {
	return &GormInfluencerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInfluencerRepository) WithTx(tx *gorm.DB) InfluencerRepository {
	if tx == nil {
		return r
	}
	return &GormInfluencerRepository{db: tx}
}

// Transaction 执行事务
func (r *GormInfluencerRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按 ID 获取大使
func (r *GormInfluencerRepository) GetByID(id uint) (*models.Influencer, error) {
	if id == 0 {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.First(&influencer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// GetByIDForUpdate 按 ID 获取大使并加行锁
func (r *GormInfluencerRepository) GetByIDForUpdate(id uint) (*models.Influencer, error) {
	if id == 0 {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&influencer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// GetByReferralCode 按推荐码获取大使
func (r *GormInfluencerRepository) GetByReferralCode(code string) (*models.Influencer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.Where("referral_code = ?", code).First(&influencer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// Create 创建大使
func (r *GormInfluencerRepository) Create(influencer *models.Influencer) error {
	return r.db.Create(influencer).Error
}

// Update 更新大使
func (r *GormInfluencerRepository) Update(influencer *models.Influencer) error {
	return r.db.Save(influencer).Error
}

// Delete 删除大使（软删除）
func (r *GormInfluencerRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Influencer{}, id).Error
}

// List 查询大使列表
func (r *GormInfluencerRepository) List(filter InfluencerListFilter) ([]models.Influencer, int64, error) {
	query := r.db.Model(&models.Influencer{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(name LIKE ? OR phone LIKE ? OR email LIKE ? OR referral_code LIKE ?)", like, like, like, like)
	}
	if tier := strings.TrimSpace(filter.TierCode); tier != "" {
		query = query.Where("tier_code = ?", tier)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Influencer
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus 更新大使状态
func (r *GormInfluencerRepository) UpdateStatus(id uint, status string, updatedAt time.Time) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.Influencer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     strings.TrimSpace(status),
			"updated_at": updatedAt,
		}).Error
}

// ResetMonthlyCommission 将非当前账期的大使月度佣金清零
// month 为当前账期（YYYY-MM），返回受影响行数。
func (r *GormInfluencerRepository) ResetMonthlyCommission(month string, now time.Time) (int64, error) {
	result := r.db.Model(&models.Influencer{}).
		Where("commission_month <> ?", month).
		Updates(map[string]interface{}{
			"monthly_commission": decimal.Zero,
			"commission_month":   month,
			"updated_at":         now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
