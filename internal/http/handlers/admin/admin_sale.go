package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/repository"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetAdminSales 获取销售记录列表 (Admin)
func (h *Handler) GetAdminSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 64)
	influencerID, _ := strconv.ParseUint(c.Query("influencer_id"), 10, 64)
	storeID, _ := strconv.ParseUint(c.Query("store_id"), 10, 64)

	sales, total, err := h.SaleService.List(repository.SaleListFilter{
		Page:         page,
		PageSize:     pageSize,
		SaleNo:       c.Query("sale_no"),
		CustomerID:   uint(customerID),
		InfluencerID: uint(influencerID),
		StoreID:      uint(storeID),
		Status:       c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询销售记录失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, sales, pagination)
}

// GetAdminSale 获取销售记录详情 (Admin)
func (h *Handler) GetAdminSale(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	sale, err := h.SaleService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "销售记录不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询销售记录失败", err)
		return
	}

	response.Success(c, sale)
}

// CreateSaleRequest 录入销售请求
type CreateSaleRequest struct {
	CustomerID uint    `json:"customer_id" binding:"required"`
	StoreID    *uint   `json:"store_id"`
	Liters     float64 `json:"liters" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	SoldAt     *string `json:"sold_at"`
}

// CreateSale 录入一笔待核实销售
func (h *Handler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	var soldAt *time.Time
	if req.SoldAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.SoldAt)
		if err != nil {
			respondError(c, response.CodeBadRequest, "销售时间格式错误", nil)
			return
		}
		soldAt = &parsed
	}

	sale, err := h.SaleService.Create(service.SaleCreateInput{
		CustomerID: req.CustomerID,
		StoreID:    req.StoreID,
		Liters:     decimal.NewFromFloat(req.Liters),
		Amount:     decimal.NewFromFloat(req.Amount),
		SoldAt:     soldAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "参数错误", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "客户不存在", nil)
		default:
			respondError(c, response.CodeInternal, "录入销售失败", err)
		}
		return
	}

	response.Success(c, sale)
}

// VerifySale 核实销售并结算返现与佣金
func (h *Handler) VerifySale(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	result, err := h.SaleService.Verify(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "销售记录不存在", nil)
		case errors.Is(err, service.ErrSaleAlreadySettled):
			respondError(c, response.CodeConflict, "销售记录已结算", nil)
		case errors.Is(err, service.ErrCommissionConfig), errors.Is(err, service.ErrLadderConfig):
			respondError(c, response.CodeInternal, "等级或佣金配置无效", err)
		default:
			respondError(c, response.CodeInternal, "核实销售失败", err)
		}
		return
	}

	response.Success(c, result)
}

// RejectSaleRequest 驳回销售请求
type RejectSaleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectSale 驳回一笔待核实销售
func (h *Handler) RejectSale(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	var req RejectSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	sale, err := h.SaleService.Reject(id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "销售记录不存在", nil)
		case errors.Is(err, service.ErrSaleAlreadySettled):
			respondError(c, response.CodeConflict, "销售记录已结算", nil)
		default:
			respondError(c, response.CodeInternal, "驳回销售失败", err)
		}
		return
	}

	response.Success(c, sale)
}
