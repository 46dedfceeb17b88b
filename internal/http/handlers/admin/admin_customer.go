package admin

import (
	"errors"
	"strconv"

	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/repository"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminCustomers 获取客户列表 (Admin)
func (h *Handler) GetAdminCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	influencerID, _ := strconv.ParseUint(c.Query("influencer_id"), 10, 64)

	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:         page,
		PageSize:     pageSize,
		Keyword:      c.Query("search"),
		TierCode:     c.Query("tier"),
		Status:       c.Query("status"),
		InfluencerID: uint(influencerID),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询客户列表失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, customers, pagination)
}

// GetAdminCustomer 获取客户详情 (Admin)
func (h *Handler) GetAdminCustomer(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	customer, err := h.CustomerService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "客户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询客户失败", err)
		return
	}

	response.Success(c, customer)
}

// CreateCustomerRequest 创建客户请求
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code"`
}

// CreateCustomer 创建客户
// 携带推荐码时在同一事务内完成大使归因。
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	customer, err := h.CustomerService.Create(service.CustomerCreateInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "参数错误", nil)
		case errors.Is(err, service.ErrPhoneTaken):
			respondError(c, response.CodeBadRequest, "手机号已被占用", nil)
		case errors.Is(err, service.ErrReferralCodeInvalid):
			respondError(c, response.CodeBadRequest, "推荐码无效", nil)
		case errors.Is(err, service.ErrInfluencerInactive):
			respondError(c, response.CodeBadRequest, "推广大使已停用", nil)
		default:
			respondError(c, response.CodeInternal, "创建客户失败", err)
		}
		return
	}

	response.Success(c, customer)
}

// UpdateCustomerRequest 更新客户请求
type UpdateCustomerRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Status *string `json:"status"`
}

// UpdateCustomer 更新客户
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	customer, err := h.CustomerService.Update(id, service.CustomerUpdateInput{
		Name:   req.Name,
		Email:  req.Email,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "客户不存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "参数错误", nil)
		default:
			respondError(c, response.CodeInternal, "更新客户失败", err)
		}
		return
	}

	response.Success(c, customer)
}
