package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aqua-next/internal/cache"
	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/repository"
)

const (
	dashboardCacheTTL      = 45 * time.Second
	dashboardCustomMaxDays = 90
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardQueryInput 仪表盘查询输入
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	ForceRefresh bool
}

// DashboardOverviewResponse 仪表盘总览响应
type DashboardOverviewResponse struct {
	Range           string                                     `json:"range"`
	From            string                                     `json:"from"`
	To              string                                     `json:"to"`
	Overview        repository.DashboardOverviewRow            `json:"overview"`
	Trends          []repository.DashboardSaleTrendRow         `json:"trends"`
	TopInfluencers  []repository.DashboardInfluencerRankingRow `json:"top_influencers"`
	CustomerTiers   []repository.DashboardTierDistributionRow  `json:"customer_tiers"`
	InfluencerTiers []repository.DashboardTierDistributionRow  `json:"influencer_tiers"`
}

// GetOverview 获取仪表盘总览（短 TTL 缓存）
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	rangeKey, from, to, err := resolveDashboardRange(input)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:overview:%s:%s", rangeKey, from.Format("20060102"))
	if !input.ForceRefresh {
		var cached DashboardOverviewResponse
		if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(from, to)
	if err != nil {
		return nil, err
	}
	trends, err := s.repo.GetSaleTrends(from, to)
	if err != nil {
		return nil, err
	}
	topInfluencers, err := s.repo.GetTopInfluencers(from, to, 10)
	if err != nil {
		return nil, err
	}
	customerTiers, err := s.repo.GetTierDistribution(constants.TierKindCustomer)
	if err != nil {
		return nil, err
	}
	influencerTiers, err := s.repo.GetTierDistribution(constants.TierKindInfluencer)
	if err != nil {
		return nil, err
	}

	response := &DashboardOverviewResponse{
		Range:           rangeKey,
		From:            from.Format(time.RFC3339),
		To:              to.Format(time.RFC3339),
		Overview:        overview,
		Trends:          trends,
		TopInfluencers:  topInfluencers,
		CustomerTiers:   customerTiers,
		InfluencerTiers: influencerTiers,
	}
	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

func resolveDashboardRange(input DashboardQueryInput) (string, time.Time, time.Time, error) {
	now := time.Now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	switch rangeKey {
	case "", "7d":
		return "7d", endOfToday.AddDate(0, 0, -7), endOfToday, nil
	case "30d":
		return "30d", endOfToday.AddDate(0, 0, -30), endOfToday, nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return "month", start, endOfToday, nil
	case "custom":
		if input.From == nil || input.To == nil {
			return "", time.Time{}, time.Time{}, ErrInvalidInput
		}
		from, to := *input.From, *input.To
		if !to.After(from) {
			return "", time.Time{}, time.Time{}, ErrInvalidInput
		}
		if to.Sub(from) > dashboardCustomMaxDays*24*time.Hour {
			return "", time.Time{}, time.Time{}, ErrInvalidInput
		}
		return "custom", from, to, nil
	default:
		return "", time.Time{}, time.Time{}, ErrInvalidInput
	}
}
