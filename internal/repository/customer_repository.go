package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerRepository 客户数据访问接口
type CustomerRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CustomerRepository

	GetByID(id uint) (*models.Customer, error)
	GetByIDForUpdate(id uint) (*models.Customer, error)
	GetByPhone(phone string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	Delete(id uint) error
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
	CountByInfluencer(influencerID uint) (int64, error)
	CountActiveByInfluencer(influencerID uint, activeSince time.Time) (int64, error)
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCustomerRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按 ID 获取客户
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	if id == 0 {
		return nil, nil
	}
	var customer models.Customer
	if err := r.db.Preload("Influencer").First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByIDForUpdate 按 ID 获取客户并加行锁
func (r *GormCustomerRepository) GetByIDForUpdate(id uint) (*models.Customer, error) {
	if id == 0 {
		return nil, nil
	}
	var customer models.Customer
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByPhone 按手机号获取客户
func (r *GormCustomerRepository) GetByPhone(phone string) (*models.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}
	var customer models.Customer
	if err := r.db.Where("phone = ?", phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create 创建客户
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update 更新客户
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete 删除客户（软删除）
func (r *GormCustomerRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Customer{}, id).Error
}

// List 查询客户列表
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(name LIKE ? OR phone LIKE ? OR email LIKE ?)", like, like, like)
	}
	if tier := strings.TrimSpace(filter.TierCode); tier != "" {
		query = query.Where("tier_code = ?", tier)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.InfluencerID != 0 {
		query = query.Where("influencer_id = ?", filter.InfluencerID)
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

	var rows []models.Customer
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountByInfluencer 统计大使名下客户数
func (r *GormCustomerRepository) CountByInfluencer(influencerID uint) (int64, error) {
	if influencerID == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("influencer_id = ?", influencerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByInfluencer 统计大使名下活跃客户数
// 活跃定义：状态为 active 且在 activeSince 之后有过购买。
func (r *GormCustomerRepository) CountActiveByInfluencer(influencerID uint, activeSince time.Time) (int64, error) {
	if influencerID == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("influencer_id = ?", influencerID).
		Where("status = ?", constants.CustomerStatusActive).
		Where("last_purchase_at IS NOT NULL AND last_purchase_at >= ?", activeSince).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
