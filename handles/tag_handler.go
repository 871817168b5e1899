package handles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techlib/services"
	"techlib/utils"
)

// TagHandler 标签API处理器
type TagHandler struct {
	tags   *services.TagService
	facets *services.FacetService
}

// NewTagHandler 创建标签处理器
func NewTagHandler(tags *services.TagService, facets *services.FacetService) *TagHandler {
	return &TagHandler{tags: tags, facets: facets}
}

// GetTags 获取全部标签
// GET /api/tags
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tags.ListTags()
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "success", tags)
}

// GetAvailableTags 获取可继续筛选的标签
// GET /api/tags/available?tag_ids=1,2,3
// 不带 tag_ids 时返回全部标签目录
func (h *TagHandler) GetAvailableTags(c *gin.Context) {
	result, err := h.facets.Facets(parseTagIDs(c))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "success", result)
}

// CreateTag 创建标签（同名时返回已有标签）
// POST /api/admin/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	tag, err := h.tags.CreateOrGetTag(req.Name)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "创建成功", tag)
}

// RenameTag 标签改名
// PUT /api/admin/tags/:id
func (h *TagHandler) RenameTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	tag, err := h.tags.RenameTag(id, req.Name)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "更新成功", tag)
}

// RecategorizeTag 调整标签所属分类
// PUT /api/admin/tags/:id/category
// 请求体 {"category_id": 3} 或 {"category_id": null}（移到未分类）
func (h *TagHandler) RecategorizeTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	var req struct {
		CategoryID *uint `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	tag, err := h.tags.RecategorizeTag(id, req.CategoryID)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "更新成功", tag)
}

// DeleteTag 删除标签
// DELETE /api/admin/tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	if err := h.tags.DeleteTag(id); err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "删除成功", nil)
}
