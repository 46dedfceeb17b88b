package admin

import (
	"fmt"
	"strconv"
	"strings"

	handlershared "github.com/aqua-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "管理员标识无效", "管理员标识类型异常")
}

func parseIDParam(c *gin.Context) (uint, error) {
	raw := strings.TrimSpace(c.Param("id"))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid id param: %q", raw)
	}
	return uint(value), nil
}
