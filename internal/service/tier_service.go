package service

import (
	"fmt"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/loyalty"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/repository"
)

// TierService 等级阶梯服务
// 阶梯整表替换，单行修改容易破坏门槛单调性。
type TierService struct {
	repo           repository.TierRepository
	settingService *SettingService
}

// NewTierService 创建等级阶梯服务
func NewTierService(repo repository.TierRepository, settingService *SettingService) *TierService {
	return &TierService{repo: repo, settingService: settingService}
}

// ListLevels 获取指定类型的阶梯（按序号升序）
func (s *TierService) ListLevels(kind string) ([]models.TierLevel, error) {
	if kind != constants.TierKindCustomer && kind != constants.TierKindInfluencer {
		return nil, fmt.Errorf("%w: 未知阶梯类型 %q", ErrInvalidInput, kind)
	}
	return s.repo.ListByKind(kind)
}

// Ladder 获取指定类型的引擎阶梯
func (s *TierService) Ladder(kind string) (loyalty.Ladder, error) {
	levels, err := s.ListLevels(kind)
	if err != nil {
		return nil, err
	}
	return ladderFromLevels(levels), nil
}

// ReplaceLadder 整体替换阶梯并校验
func (s *TierService) ReplaceLadder(kind string, levels []models.TierLevel) error {
	ladder := ladderFromLevels(levels)
	switch kind {
	case constants.TierKindCustomer:
		if err := loyalty.ValidateCustomerLadder(ladder); err != nil {
			return fmt.Errorf("%w: %v", ErrLadderConfig, err)
		}
	case constants.TierKindInfluencer:
		if err := loyalty.ValidateInfluencerLadder(ladder); err != nil {
			return fmt.Errorf("%w: %v", ErrLadderConfig, err)
		}
		// 大使阶梯变化会使倍率表失配，提前校验配置
		setting, err := s.settingService.GetCommissionSetting()
		if err != nil {
			return err
		}
		if err := setting.ToLoyaltySettings().Validate(ladder); err != nil {
			return fmt.Errorf("%w: %v", ErrCommissionConfig, err)
		}
	default:
		return fmt.Errorf("%w: 未知阶梯类型 %q", ErrInvalidInput, kind)
	}
	return s.repo.ReplaceLadder(kind, levels)
}

// Engine 从当前阶梯与配置构建引擎
func (s *TierService) Engine() (*loyalty.Engine, error) {
	customerLadder, err := s.Ladder(constants.TierKindCustomer)
	if err != nil {
		return nil, err
	}
	influencerLadder, err := s.Ladder(constants.TierKindInfluencer)
	if err != nil {
		return nil, err
	}
	setting, err := s.settingService.GetCommissionSetting()
	if err != nil {
		return nil, err
	}
	return loyalty.NewEngine(customerLadder, influencerLadder, setting.ToLoyaltySettings())
}

// EnsureDefaultLadders 阶梯为空时写入默认阶梯
func (s *TierService) EnsureDefaultLadders() error {
	for kind, levels := range map[string][]models.TierLevel{
		constants.TierKindCustomer:   DefaultCustomerLevels(),
		constants.TierKindInfluencer: DefaultInfluencerLevels(),
	} {
		existing, err := s.repo.ListByKind(kind)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}
		if err := s.ReplaceLadder(kind, levels); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCustomerLevels 默认客户阶梯
func DefaultCustomerLevels() []models.TierLevel {
	return []models.TierLevel{
		{Kind: constants.TierKindCustomer, Code: constants.TierCodeLead, Name: "Lead", Rank: 0, MinVolumeLiters: money("0"), CashbackPercent: money("5"), CommissionMultiplier: money("1")},
		{Kind: constants.TierKindCustomer, Code: constants.TierCodeSilver, Name: "Prata", Rank: 1, MinVolumeLiters: money("50"), CashbackPercent: money("20"), CommissionMultiplier: money("1.2")},
		{Kind: constants.TierKindCustomer, Code: constants.TierCodeGold, Name: "Ouro", Rank: 2, MinVolumeLiters: money("150"), CashbackPercent: money("30"), CommissionMultiplier: money("1.5")},
		{Kind: constants.TierKindCustomer, Code: constants.TierCodePlatinum, Name: "Platina", Rank: 3, MinVolumeLiters: money("300"), CashbackPercent: money("40"), CommissionMultiplier: money("2")},
	}
}

// DefaultInfluencerLevels 默认大使阶梯
func DefaultInfluencerLevels() []models.TierLevel {
	return []models.TierLevel{
		{Kind: constants.TierKindInfluencer, Code: constants.TierCodeLead, Name: "Lead", Rank: 0, CommissionMultiplier: money("1")},
		{Kind: constants.TierKindInfluencer, Code: constants.TierCodeSilver, Name: "Prata", Rank: 1, MinReferrals: 5, MinActiveClients: 10, CommissionMultiplier: money("1.2")},
		{Kind: constants.TierKindInfluencer, Code: constants.TierCodeGold, Name: "Ouro", Rank: 2, MinReferrals: 15, MinActiveClients: 25, CommissionMultiplier: money("1.5")},
		{Kind: constants.TierKindInfluencer, Code: constants.TierCodePlatinum, Name: "Platina", Rank: 3, MinReferrals: 30, MinActiveClients: 50, CommissionMultiplier: money("2")},
	}
}

func ladderFromLevels(levels []models.TierLevel) loyalty.Ladder {
	ladder := make(loyalty.Ladder, 0, len(levels))
	for _, level := range levels {
		ladder = append(ladder, loyalty.Tier{
			Code:                 level.Code,
			Name:                 level.Name,
			Rank:                 level.Rank,
			MinVolumeLiters:      level.MinVolumeLiters.Decimal,
			MinReferrals:         level.MinReferrals,
			MinActiveClients:     level.MinActiveClients,
			CashbackPercent:      level.CashbackPercent.Decimal,
			CommissionMultiplier: level.CommissionMultiplier.Decimal,
		})
	}
	return ladder
}

func money(raw string) models.Money {
	m, err := models.NewMoneyFromString(raw)
	if err != nil {
		panic(fmt.Sprintf("非法金额常量: %s", raw))
	}
	return m
}
