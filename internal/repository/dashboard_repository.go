package repository

import (
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetSaleTrends(startAt, endAt time.Time) ([]DashboardSaleTrendRow, error)
	GetTopInfluencers(startAt, endAt time.Time, limit int) ([]DashboardInfluencerRankingRow, error)
	GetTierDistribution(kind string) ([]DashboardTierDistributionRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	CustomersTotal    int64
	InfluencersActive int64
	SalesTotal        int64
	SalesPending      int64
	SalesVerified     int64
	AmountVerified    float64
	LitersVerified    float64
	PayoutsPending    int64
	CommissionTotal   float64
}

// DashboardSaleTrendRow 销售趋势统计
type DashboardSaleTrendRow struct {
	Day            string
	SalesTotal     int64
	SalesVerified  int64
	AmountVerified float64
}

// DashboardInfluencerRankingRow 大使排行原始行
type DashboardInfluencerRankingRow struct {
	InfluencerID   uint
	Name           string
	TierCode       string
	VerifiedSales  int64
	AmountVerified float64
	Commission     float64
}

// DashboardTierDistributionRow 等级分布统计
type DashboardTierDistributionRow struct {
	TierCode string
	Count    int64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 统计区间内总览指标
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	if err := r.db.Model(&models.Customer{}).Count(&row.CustomersTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Influencer{}).
		Where("status = ?", constants.InfluencerStatusActive).
		Count(&row.InfluencersActive).Error; err != nil {
		return row, err
	}

	saleBase := r.db.Model(&models.Sale{}).Where("sold_at >= ? AND sold_at < ?", startAt, endAt)
	if err := saleBase.Session(&gorm.Session{}).Count(&row.SalesTotal).Error; err != nil {
		return row, err
	}
	if err := saleBase.Session(&gorm.Session{}).
		Where("status = ?", constants.SaleStatusPending).
		Count(&row.SalesPending).Error; err != nil {
		return row, err
	}

	var verified struct {
		Count      int64
		Amount     float64
		Liters     float64
		Commission float64
	}
	err := saleBase.Session(&gorm.Session{}).
		Where("status = ?", constants.SaleStatusVerified).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(liters), 0) AS liters, COALESCE(SUM(commission_amount), 0) AS commission").
		Scan(&verified).Error
	if err != nil {
		return row, err
	}
	row.SalesVerified = verified.Count
	row.AmountVerified = verified.Amount
	row.LitersVerified = verified.Liters
	row.CommissionTotal = verified.Commission

	if err := r.db.Model(&models.PayoutRequest{}).
		Where("status = ?", constants.PayoutStatusPending).
		Count(&row.PayoutsPending).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetSaleTrends 统计区间内按天的销售趋势
func (r *GormDashboardRepository) GetSaleTrends(startAt, endAt time.Time) ([]DashboardSaleTrendRow, error) {
	rows := make([]DashboardSaleTrendRow, 0)
	err := r.db.Model(&models.Sale{}).
		Select("DATE(sold_at) AS day, "+
			"COUNT(*) AS sales_total, "+
			"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS sales_verified, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS amount_verified",
			constants.SaleStatusVerified, constants.SaleStatusVerified).
		Where("sold_at >= ? AND sold_at < ?", startAt, endAt).
		Group("DATE(sold_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopInfluencers 统计区间内大使业绩排行
func (r *GormDashboardRepository) GetTopInfluencers(startAt, endAt time.Time, limit int) ([]DashboardInfluencerRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows := make([]DashboardInfluencerRankingRow, 0)
	err := r.db.Model(&models.Sale{}).
		Select("sales.influencer_id AS influencer_id, "+
			"influencers.name AS name, "+
			"influencers.tier_code AS tier_code, "+
			"COUNT(*) AS verified_sales, "+
			"COALESCE(SUM(sales.amount), 0) AS amount_verified, "+
			"COALESCE(SUM(sales.commission_amount), 0) AS commission").
		Joins("JOIN influencers ON influencers.id = sales.influencer_id").
		Where("sales.status = ?", constants.SaleStatusVerified).
		Where("sales.influencer_id IS NOT NULL").
		Where("sales.sold_at >= ? AND sales.sold_at < ?", startAt, endAt).
		Group("sales.influencer_id, influencers.name, influencers.tier_code").
		Order("amount_verified DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTierDistribution 统计等级分布
func (r *GormDashboardRepository) GetTierDistribution(kind string) ([]DashboardTierDistributionRow, error) {
	rows := make([]DashboardTierDistributionRow, 0)
	var err error
	switch kind {
	case constants.TierKindInfluencer:
		err = r.db.Model(&models.Influencer{}).
			Select("tier_code, COUNT(*) AS count").
			Group("tier_code").
			Scan(&rows).Error
	default:
		err = r.db.Model(&models.Customer{}).
			Select("tier_code, COUNT(*) AS count").
			Group("tier_code").
			Scan(&rows).Error
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}
