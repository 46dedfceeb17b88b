package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/loyalty"
	"github.com/aqua-next/internal/models"

	"github.com/shopspring/decimal"
)

const (
	commissionBaseRateMin        = 0
	commissionBaseRateMax        = 100
	commissionMultiplierMin      = 0
	commissionMultiplierMax      = 100
	commissionMinActiveClientMax = 100000
)

// CommissionSetting 佣金与提现配置
type CommissionSetting struct {
	BaseRatePercent  float64            `json:"base_rate_percent"`
	TierMultipliers  map[string]float64 `json:"tier_multipliers"`
	MinActiveClients int                `json:"min_active_clients"`
	PayoutThreshold  float64            `json:"payout_threshold"`
	MonthlyCap       float64            `json:"monthly_cap"`
	PayoutFrequency  string             `json:"payout_frequency"`
	AutoApproval     bool               `json:"auto_approval"`
}

// CommissionDefaultSetting 默认佣金配置
func CommissionDefaultSetting() CommissionSetting {
	return NormalizeCommissionSetting(CommissionSetting{
		BaseRatePercent: 5,
		TierMultipliers: map[string]float64{
			constants.TierCodeLead:     1,
			constants.TierCodeSilver:   1.2,
			constants.TierCodeGold:     1.5,
			constants.TierCodePlatinum: 2,
		},
		MinActiveClients: 10,
		PayoutThreshold:  50,
		MonthlyCap:       1000,
		PayoutFrequency:  constants.PayoutFrequencyMonthly,
		AutoApproval:     true,
	})
}

// NormalizeCommissionSetting 归一化佣金配置
func NormalizeCommissionSetting(setting CommissionSetting) CommissionSetting {
	setting.BaseRatePercent = roundCommissionDecimal(setting.BaseRatePercent)
	if setting.BaseRatePercent < commissionBaseRateMin {
		setting.BaseRatePercent = commissionBaseRateMin
	}
	if setting.BaseRatePercent > commissionBaseRateMax {
		setting.BaseRatePercent = commissionBaseRateMax
	}

	normalizedMultipliers := make(map[string]float64, len(setting.TierMultipliers))
	for code, multiplier := range setting.TierMultipliers {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		multiplier = roundCommissionDecimal(multiplier)
		if multiplier < commissionMultiplierMin {
			multiplier = commissionMultiplierMin
		}
		if multiplier > commissionMultiplierMax {
			multiplier = commissionMultiplierMax
		}
		normalizedMultipliers[code] = multiplier
	}
	setting.TierMultipliers = normalizedMultipliers

	if setting.MinActiveClients < 0 {
		setting.MinActiveClients = 0
	}
	if setting.MinActiveClients > commissionMinActiveClientMax {
		setting.MinActiveClients = commissionMinActiveClientMax
	}

	setting.PayoutThreshold = roundCommissionDecimal(setting.PayoutThreshold)
	if setting.PayoutThreshold < 0 {
		setting.PayoutThreshold = 0
	}
	setting.MonthlyCap = roundCommissionDecimal(setting.MonthlyCap)
	if setting.MonthlyCap < 0 {
		setting.MonthlyCap = 0
	}

	setting.PayoutFrequency = strings.ToLower(strings.TrimSpace(setting.PayoutFrequency))
	if setting.PayoutFrequency == "" {
		setting.PayoutFrequency = constants.PayoutFrequencyMonthly
	}
	return setting
}

// ValidateCommissionSetting 校验佣金配置
func ValidateCommissionSetting(setting CommissionSetting) error {
	normalized := NormalizeCommissionSetting(setting)
	if normalized.BaseRatePercent < commissionBaseRateMin || normalized.BaseRatePercent > commissionBaseRateMax {
		return fmt.Errorf("%w: 基础佣金比例必须在 0-100 之间", ErrCommissionConfig)
	}
	if len(normalized.TierMultipliers) == 0 {
		return fmt.Errorf("%w: 缺少等级佣金倍率", ErrCommissionConfig)
	}
	if normalized.MonthlyCap < normalized.PayoutThreshold {
		return fmt.Errorf("%w: 月度佣金上限不能低于提现阈值", ErrCommissionConfig)
	}
	switch normalized.PayoutFrequency {
	case constants.PayoutFrequencyWeekly,
		constants.PayoutFrequencyBiweekly,
		constants.PayoutFrequencyMonthly,
		constants.PayoutFrequencyOnDemand:
	default:
		return fmt.Errorf("%w: 结算周期 %q 不受支持", ErrCommissionConfig, normalized.PayoutFrequency)
	}
	return nil
}

// CommissionSettingToMap 将佣金配置转换为 settings 存储结构
func CommissionSettingToMap(setting CommissionSetting) map[string]interface{} {
	normalized := NormalizeCommissionSetting(setting)
	multipliers := make(map[string]interface{}, len(normalized.TierMultipliers))
	for code, multiplier := range normalized.TierMultipliers {
		multipliers[code] = multiplier
	}
	return map[string]interface{}{
		"base_rate_percent":  normalized.BaseRatePercent,
		"tier_multipliers":   multipliers,
		"min_active_clients": normalized.MinActiveClients,
		"payout_threshold":   normalized.PayoutThreshold,
		"monthly_cap":        normalized.MonthlyCap,
		"payout_frequency":   normalized.PayoutFrequency,
		"auto_approval":      normalized.AutoApproval,
	}
}

func commissionSettingFromJSON(raw models.JSON, fallback CommissionSetting) CommissionSetting {
	result := fallback

	if rateRaw, ok := raw["base_rate_percent"]; ok {
		if parsed, err := parseSettingFloat(rateRaw); err == nil {
			result.BaseRatePercent = parsed
		}
	}
	if multipliersRaw, ok := raw["tier_multipliers"]; ok {
		if multiplierMap, ok := multipliersRaw.(map[string]interface{}); ok {
			parsedMultipliers := make(map[string]float64, len(multiplierMap))
			for code, value := range multiplierMap {
				if parsed, err := parseSettingFloat(value); err == nil {
					parsedMultipliers[code] = parsed
				}
			}
			result.TierMultipliers = parsedMultipliers
		}
	}
	if minActiveRaw, ok := raw["min_active_clients"]; ok {
		if parsed, err := parseSettingInt(minActiveRaw); err == nil {
			result.MinActiveClients = parsed
		}
	}
	if thresholdRaw, ok := raw["payout_threshold"]; ok {
		if parsed, err := parseSettingFloat(thresholdRaw); err == nil {
			result.PayoutThreshold = parsed
		}
	}
	if capRaw, ok := raw["monthly_cap"]; ok {
		if parsed, err := parseSettingFloat(capRaw); err == nil {
			result.MonthlyCap = parsed
		}
	}
	if frequencyRaw, ok := raw["payout_frequency"]; ok {
		if parsed := parseSettingString(frequencyRaw); parsed != "" {
			result.PayoutFrequency = parsed
		}
	}
	if autoRaw, ok := raw["auto_approval"]; ok {
		result.AutoApproval = parseSettingBool(autoRaw)
	}

	return NormalizeCommissionSetting(result)
}

func normalizeCommissionSettingMap(value map[string]interface{}) models.JSON {
	setting := commissionSettingFromJSON(models.JSON(value), CommissionDefaultSetting())
	return models.JSON(CommissionSettingToMap(setting))
}

// ToLoyaltySettings 转换为引擎配置
func (c CommissionSetting) ToLoyaltySettings() loyalty.Settings {
	normalized := NormalizeCommissionSetting(c)
	multipliers := make(map[string]decimal.Decimal, len(normalized.TierMultipliers))
	for code, multiplier := range normalized.TierMultipliers {
		multipliers[code] = decimal.NewFromFloat(multiplier)
	}
	return loyalty.Settings{
		BaseRatePercent:  decimal.NewFromFloat(normalized.BaseRatePercent),
		TierMultipliers:  multipliers,
		MinActiveClients: normalized.MinActiveClients,
		PayoutThreshold:  decimal.NewFromFloat(normalized.PayoutThreshold),
		MonthlyCap:       decimal.NewFromFloat(normalized.MonthlyCap),
		PayoutFrequency:  normalized.PayoutFrequency,
		AutoApproval:     normalized.AutoApproval,
	}
}

// GetCommissionSetting 获取佣金设置（优先 settings，空时回退默认）
func (s *SettingService) GetCommissionSetting() (CommissionSetting, error) {
	fallback := CommissionDefaultSetting()
	if s == nil {
		return fallback, nil
	}

	value, err := s.GetByKey(constants.SettingKeyCommissionConfig)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return commissionSettingFromJSON(value, fallback), nil
}

// UpdateCommissionSetting 更新佣金设置
func (s *SettingService) UpdateCommissionSetting(setting CommissionSetting) (CommissionSetting, error) {
	normalized := NormalizeCommissionSetting(setting)
	if err := ValidateCommissionSetting(normalized); err != nil {
		return CommissionDefaultSetting(), err
	}
	if _, err := s.Update(constants.SettingKeyCommissionConfig, CommissionSettingToMap(normalized)); err != nil {
		return CommissionDefaultSetting(), err
	}
	return normalized, nil
}

func roundCommissionDecimal(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return math.Round(value*100) / 100
}
