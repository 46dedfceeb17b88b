package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/repository"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminInfluencers 获取大使列表 (Admin)
func (h *Handler) GetAdminInfluencers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	influencers, total, err := h.InfluencerService.List(repository.InfluencerListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("search"),
		TierCode: c.Query("tier"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询大使列表失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, influencers, pagination)
}

// GetAdminInfluencer 获取大使详情 (Admin)
// 详情会按当前活跃窗口刷新活跃客户数。
func (h *Handler) GetAdminInfluencer(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	influencer, err := h.InfluencerService.RefreshActiveClients(id, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "推广大使不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询大使失败", err)
		return
	}

	response.Success(c, influencer)
}

// CreateInfluencerRequest 创建大使请求
type CreateInfluencerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

// CreateInfluencer 创建大使并分配推荐码
func (h *Handler) CreateInfluencer(c *gin.Context) {
	var req CreateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	influencer, err := h.InfluencerService.Create(service.InfluencerCreateInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "参数错误", nil)
		case errors.Is(err, service.ErrPhoneTaken):
			respondError(c, response.CodeBadRequest, "手机号已被占用", nil)
		default:
			respondError(c, response.CodeInternal, "创建大使失败", err)
		}
		return
	}

	response.Success(c, influencer)
}

// UpdateInfluencerStatusRequest 更新大使状态请求
type UpdateInfluencerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateInfluencerStatus 启用或停用大使
func (h *Handler) UpdateInfluencerStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	var req UpdateInfluencerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	if err := h.InfluencerService.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "推广大使不存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "状态取值无效", nil)
		default:
			respondError(c, response.CodeInternal, "更新大使状态失败", err)
		}
		return
	}

	response.Success(c, nil)
}
