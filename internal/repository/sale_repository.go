package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleRepository 销售记录数据访问接口
type SaleRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) SaleRepository

	GetByID(id uint) (*models.Sale, error)
	GetByIDForUpdate(id uint) (*models.Sale, error)
	GetBySaleNo(saleNo string) (*models.Sale, error)
	Create(sale *models.Sale) error
	Update(sale *models.Sale) error
	List(filter SaleListFilter) ([]models.Sale, int64, error)
	CountByStatus(status string) (int64, error)
	SumVerifiedAmount(from, to time.Time) (decimal.Decimal, error)
	SumVerifiedLiters(from, to time.Time) (decimal.Decimal, error)
}

// GormSaleRepository GORM 实现
type GormSaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售记录仓库
func NewSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSaleRepository) WithTx(tx *gorm.DB) SaleRepository {
	if tx == nil {
		return r
	}
	return &GormSaleRepository{db: tx}
}

// Transaction 执行事务
func (r *GormSaleRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按 ID 获取销售记录
func (r *GormSaleRepository) GetByID(id uint) (*models.Sale, error) {
	if id == 0 {
		return nil, nil
	}
	var sale models.Sale
	if err := r.db.Preload("Customer").Preload("Influencer").Preload("Store").First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetByIDForUpdate 按 ID 获取销售记录并加行锁
func (r *GormSaleRepository) GetByIDForUpdate(id uint) (*models.Sale, error) {
	if id == 0 {
		return nil, nil
	}
	var sale models.Sale
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetBySaleNo 按销售编号获取销售记录
func (r *GormSaleRepository) GetBySaleNo(saleNo string) (*models.Sale, error) {
	saleNo = strings.TrimSpace(saleNo)
	if saleNo == "" {
		return nil, nil
	}
	var sale models.Sale
	if err := r.db.Where("sale_no = ?", saleNo).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// Create 创建销售记录
func (r *GormSaleRepository) Create(sale *models.Sale) error {
	return r.db.Create(sale).Error
}

// Update 更新销售记录
func (r *GormSaleRepository) Update(sale *models.Sale) error {
	return r.db.Save(sale).Error
}

// List 查询销售记录列表
func (r *GormSaleRepository) List(filter SaleListFilter) ([]models.Sale, int64, error) {
	query := r.db.Model(&models.Sale{}).Preload("Customer").Preload("Influencer")
	if saleNo := strings.TrimSpace(filter.SaleNo); saleNo != "" {
		query = query.Where("sale_no = ?", saleNo)
	}
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.InfluencerID != 0 {
		query = query.Where("influencer_id = ?", filter.InfluencerID)
	}
	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.SoldFrom != nil {
		query = query.Where("sold_at >= ?", *filter.SoldFrom)
	}
	if filter.SoldTo != nil {
		query = query.Where("sold_at <= ?", *filter.SoldTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Sale
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountByStatus 按状态统计销售记录数
func (r *GormSaleRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Sale{})
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumVerifiedAmount 统计区间内已核实销售总金额
func (r *GormSaleRepository) SumVerifiedAmount(from, to time.Time) (decimal.Decimal, error) {
	return r.sumVerifiedColumn("amount", from, to)
}

// SumVerifiedLiters 统计区间内已核实销售总水量
func (r *GormSaleRepository) SumVerifiedLiters(from, to time.Time) (decimal.Decimal, error) {
	return r.sumVerifiedColumn("liters", from, to)
}

func (r *GormSaleRepository) sumVerifiedColumn(column string, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	err := r.db.Model(&models.Sale{}).
		Select("COALESCE(SUM("+column+"), 0) AS total").
		Where("status = ?", constants.SaleStatusVerified).
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total.Round(2), nil
}
