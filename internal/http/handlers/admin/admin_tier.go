package admin

import (
	"errors"
	"strings"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetTierLadder 获取等级阶梯 (Admin)
func (h *Handler) GetTierLadder(c *gin.Context) {
	kind, ok := parseTierKind(c)
	if !ok {
		return
	}

	levels, err := h.TierService.ListLevels(kind)
	if err != nil {
		respondError(c, response.CodeInternal, "查询等级阶梯失败", err)
		return
	}

	response.Success(c, levels)
}

// TierLevelRequest 阶梯等级写入请求
type TierLevelRequest struct {
	Code                 string  `json:"code" binding:"required"`
	Name                 string  `json:"name" binding:"required"`
	Rank                 int     `json:"rank"`
	MinVolumeLiters      float64 `json:"min_volume_liters"`
	MinReferrals         int     `json:"min_referrals"`
	MinActiveClients     int     `json:"min_active_clients"`
	CashbackPercent      float64 `json:"cashback_percent"`
	CommissionMultiplier float64 `json:"commission_multiplier"`
}

// ReplaceTierLadderRequest 覆盖写入阶梯请求
type ReplaceTierLadderRequest struct {
	Levels []TierLevelRequest `json:"levels" binding:"required"`
}

// ReplaceTierLadder 覆盖写入等级阶梯
// 阶梯整体校验通过后按事务整表替换。
func (h *Handler) ReplaceTierLadder(c *gin.Context) {
	kind, ok := parseTierKind(c)
	if !ok {
		return
	}

	var req ReplaceTierLadderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	levels := make([]models.TierLevel, 0, len(req.Levels))
	for _, level := range req.Levels {
		levels = append(levels, models.TierLevel{
			Kind:                 kind,
			Code:                 strings.TrimSpace(level.Code),
			Name:                 strings.TrimSpace(level.Name),
			Rank:                 level.Rank,
			MinVolumeLiters:      models.NewMoneyFromDecimal(decimal.NewFromFloat(level.MinVolumeLiters)),
			MinReferrals:         level.MinReferrals,
			MinActiveClients:     level.MinActiveClients,
			CashbackPercent:      models.NewMoneyFromDecimal(decimal.NewFromFloat(level.CashbackPercent)),
			CommissionMultiplier: models.NewMoneyFromDecimal(decimal.NewFromFloat(level.CommissionMultiplier)),
		})
	}

	if err := h.TierService.ReplaceLadder(kind, levels); err != nil {
		switch {
		case errors.Is(err, service.ErrLadderConfig):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrCommissionConfig):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "参数错误", nil)
		default:
			respondError(c, response.CodeInternal, "保存等级阶梯失败", err)
		}
		return
	}

	levelsAfter, err := h.TierService.ListLevels(kind)
	if err != nil {
		respondError(c, response.CodeInternal, "查询等级阶梯失败", err)
		return
	}
	response.Success(c, levelsAfter)
}

func parseTierKind(c *gin.Context) (string, bool) {
	kind := strings.TrimSpace(c.Param("kind"))
	switch kind {
	case constants.TierKindCustomer, constants.TierKindInfluencer:
		return kind, true
	default:
		respondError(c, response.CodeBadRequest, "阶梯类型无效", nil)
		return "", false
	}
}
