package repository

import (
	"errors"
	"strings"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutRepository 提现申请数据访问接口
type PayoutRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PayoutRepository

	GetByID(id uint) (*models.PayoutRequest, error)
	GetByIDForUpdate(id uint) (*models.PayoutRequest, error)
	Create(req *models.PayoutRequest) error
	Update(req *models.PayoutRequest) error
	List(filter PayoutListFilter) ([]models.PayoutRequest, int64, error)
	HasPendingByInfluencer(influencerID uint) (bool, error)
	CountByStatus(status string) (int64, error)
}

// GormPayoutRepository GORM 实现
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository 创建提现申请仓库
func NewPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPayoutRepository) WithTx(tx *gorm.DB) PayoutRepository {
	if tx == nil {
		return r
	}
	return &GormPayoutRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPayoutRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按 ID 获取提现申请
func (r *GormPayoutRepository) GetByID(id uint) (*models.PayoutRequest, error) {
	if id == 0 {
		return nil, nil
	}
	var req models.PayoutRequest
	if err := r.db.Preload("Influencer").First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// GetByIDForUpdate 按 ID 获取提现申请并加行锁
func (r *GormPayoutRepository) GetByIDForUpdate(id uint) (*models.PayoutRequest, error) {
	if id == 0 {
		return nil, nil
	}
	var req models.PayoutRequest
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// Create 创建提现申请
func (r *GormPayoutRepository) Create(req *models.PayoutRequest) error {
	return r.db.Create(req).Error
}

// Update 更新提现申请
func (r *GormPayoutRepository) Update(req *models.PayoutRequest) error {
	return r.db.Save(req).Error
}

// List 查询提现申请列表
func (r *GormPayoutRepository) List(filter PayoutListFilter) ([]models.PayoutRequest, int64, error) {
	query := r.db.Model(&models.PayoutRequest{}).Preload("Influencer")
	if filter.InfluencerID != 0 {
		query = query.Where("influencer_id = ?", filter.InfluencerID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.AutoApproved != nil {
		query = query.Where("auto_approved = ?", *filter.AutoApproved)
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

	var rows []models.PayoutRequest
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// HasPendingByInfluencer 判断大使是否存在待审批申请
func (r *GormPayoutRepository) HasPendingByInfluencer(influencerID uint) (bool, error) {
	if influencerID == 0 {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.PayoutRequest{}).
		Where("influencer_id = ? AND status = ?", influencerID, constants.PayoutStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatus 按状态统计提现申请数
func (r *GormPayoutRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.PayoutRequest{})
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
