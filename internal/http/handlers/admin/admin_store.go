package admin

import (
	"errors"
	"strconv"

	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/repository"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminStores 获取门店列表 (Admin)
func (h *Handler) GetAdminStores(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	stores, total, err := h.StoreService.List(repository.StoreListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("search"),
		City:     c.Query("city"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询门店列表失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, stores, pagination)
}

// StoreRequest 门店写入请求
type StoreRequest struct {
	Name      string  `json:"name" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Status    string  `json:"status"`
	SortOrder int     `json:"sort_order"`
}

func (r StoreRequest) toServiceInput() service.StoreInput {
	return service.StoreInput{
		Name:      r.Name,
		City:      r.City,
		Address:   r.Address,
		Phone:     r.Phone,
		Lat:       r.Lat,
		Lng:       r.Lng,
		Status:    r.Status,
		SortOrder: r.SortOrder,
	}
}

// CreateStore 创建门店
func (h *Handler) CreateStore(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	store, err := h.StoreService.Create(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "门店信息或坐标无效", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建门店失败", err)
		return
	}

	response.Success(c, store)
}

// UpdateStore 更新门店
func (h *Handler) UpdateStore(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", err)
		return
	}

	store, err := h.StoreService.Update(id, req.toServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "门店不存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "门店信息或坐标无效", nil)
		default:
			respondError(c, response.CodeInternal, "更新门店失败", err)
		}
		return
	}

	response.Success(c, store)
}

// DeleteStore 删除门店（软删除）
func (h *Handler) DeleteStore(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	if err := h.StoreService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "门店不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除门店失败", err)
		return
	}

	response.Success(c, nil)
}
