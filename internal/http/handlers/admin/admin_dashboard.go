package admin

import (
	"errors"
	"time"

	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取仪表盘总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	input := service.DashboardQueryInput{
		Range:        c.DefaultQuery("range", "7d"),
		ForceRefresh: c.Query("refresh") == "1",
	}

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "起始日期格式错误", nil)
			return
		}
		input.From = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "结束日期格式错误", nil)
			return
		}
		input.To = &parsed
	}

	overview, err := h.DashboardService.GetOverview(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "统计区间无效", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询仪表盘失败", err)
		return
	}

	response.Success(c, overview)
}
