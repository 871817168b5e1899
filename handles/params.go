package handles

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parsePositiveInt 解析正整数查询参数，非法值回退到默认值
func parsePositiveInt(c *gin.Context, key string, defaultValue int) int {
	value, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(defaultValue)))
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}

// parseTagIDs 解析逗号分隔的标签ID参数（tag_ids=1,2,3）
// 非法片段直接跳过，不报错
func parseTagIDs(c *gin.Context) []uint {
	raw := c.Query("tag_ids")
	if raw == "" {
		return nil
	}

	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
