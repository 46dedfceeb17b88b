package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aqua-next/internal/cache"
	"github.com/aqua-next/internal/geo"
	"github.com/aqua-next/internal/http/response"
	"github.com/aqua-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	// 默认配置
	defaults := map[string]interface{}{
		"site_name": "Aqua Next",
		"languages": []string{"pt-AO", "en-US"},
		"currency":  "AOA",
		"contact": map[string]interface{}{
			"phone":    "+244 900 000 000",
			"whatsapp": "https://wa.me/244900000000",
		},
	}

	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "查询配置失败", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// SearchStores 公开门店检索
// 携带 lat/lng 时按球面距离升序返回，否则保持后台排序。
func (h *Handler) SearchStores(c *gin.Context) {
	var origin *geo.Coordinate
	latRaw := strings.TrimSpace(c.Query("lat"))
	lngRaw := strings.TrimSpace(c.Query("lng"))
	if latRaw != "" || lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			respondError(c, response.CodeBadRequest, "坐标参数格式错误", nil)
			return
		}
		origin = &geo.Coordinate{Lat: lat, Lng: lng}
	}

	ranked, err := h.StoreService.Search(origin, c.Query("q"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "坐标超出有效范围", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询门店失败", err)
		return
	}

	response.Success(c, ranked)
}

// GetReferral 查询推荐码归属
// 仅返回可公开的大使信息，供注册前校验推荐码。
func (h *Handler) GetReferral(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "参数错误", nil)
		return
	}

	influencer, err := h.InfluencerService.GetByReferralCode(code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "推荐码不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询推荐码失败", err)
		return
	}

	response.Success(c, gin.H{
		"referral_code": influencer.ReferralCode,
		"name":          influencer.Name,
		"tier":          influencer.TierCode,
		"status":        influencer.Status,
	})
}
