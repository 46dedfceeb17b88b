package admin

import (
	"errors"
	"strconv"

	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/repository"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetAdminPayouts 获取提现申请列表 (Admin)
func (h *Handler) GetAdminPayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	influencerID, _ := strconv.ParseUint(c.Query("influencer_id"), 10, 64)

	var autoApproved *bool
	if raw := c.Query("auto_approved"); raw != "" {
		value := raw == "true" || raw == "1"
		autoApproved = &value
	}

	payouts, total, err := h.PayoutService.List(repository.PayoutListFilter{
		Page:         page,
		PageSize:     pageSize,
		InfluencerID: uint(influencerID),
		Status:       c.Query("status"),
		AutoApproved: autoApproved,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询提现申请失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, payouts, pagination)
}

// GetAdminPayout 获取提现申请详情 (Admin)
func (h *Handler) GetAdminPayout(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	payout, err := h.PayoutService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "提现申请不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询提现申请失败", err)
		return
	}

	response.Success(c, payout)
}

// CreatePayoutRequest 代大使发起提现请求
type CreatePayoutRequest struct {
	InfluencerID uint     `json:"influencer_id" binding:"required"`
	Amount       *float64 `json:"amount"`
}

// CreatePayout 发起提现申请
// 金额缺省时按大使全部待结余额申请，余额在申请时即被冻结。
func (h *Handler) CreatePayout(c *gin.Context) {
	var req CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	var amount *decimal.Decimal
	if req.Amount != nil {
		value := decimal.NewFromFloat(*req.Amount)
		amount = &value
	}

	payout, err := h.PayoutService.Request(req.InfluencerID, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "推广大使不存在", nil)
		case errors.Is(err, service.ErrInfluencerInactive):
			respondError(c, response.CodeBadRequest, "推广大使已停用", nil)
		case errors.Is(err, service.ErrPayoutAlreadyPending):
			respondError(c, response.CodeConflict, "已有待审核的提现申请", nil)
		case errors.Is(err, service.ErrPayoutBelowThreshold):
			respondError(c, response.CodeBadRequest, "余额未达提现门槛", nil)
		case errors.Is(err, service.ErrInsufficientBalance):
			respondError(c, response.CodeBadRequest, "提现金额超出可用余额", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "参数错误", nil)
		default:
			respondError(c, response.CodeInternal, "发起提现失败", err)
		}
		return
	}

	response.Success(c, payout)
}

// ReviewPayoutRequest 审核提现请求
type ReviewPayoutRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

// ReviewPayout 审核提现申请
// 审核为终态操作，驳回会解冻并退回余额。
func (h *Handler) ReviewPayout(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	var req ReviewPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	payout, err := h.PayoutService.Review(id, adminID, req.Action, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "提现申请不存在", nil)
		case errors.Is(err, service.ErrPayoutAlreadyProcessed):
			respondError(c, response.CodeConflict, "提现申请已处理", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "审核动作或理由无效", nil)
		default:
			respondError(c, response.CodeInternal, "审核提现失败", err)
		}
		return
	}

	response.Success(c, payout)
}
