package handles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techlib/services"
	"techlib/utils"
)

// CategoryHandler 标签分类API处理器
type CategoryHandler struct {
	categories *services.CategoryService
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// GetCategories 获取分类列表（含成员标签）
// GET /api/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories()
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "success", categories)
}

// CreateCategory 创建分类
// POST /api/admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	category, err := h.categories.CreateCategory(req.Name)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "创建成功", category)
}

// RenameCategory 分类改名
// PUT /api/admin/categories/:id
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
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

	category, err := h.categories.RenameCategory(id, req.Name)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "更新成功", category)
}

// MoveCategory 上移/下移分类
// PUT /api/admin/categories/:id/move  请求体 {"direction": "up"}
func (h *CategoryHandler) MoveCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	if err := h.categories.MoveCategory(id, req.Direction); err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "更新成功", nil)
}

// DeleteCategory 删除分类（成员标签回到未分类）
// DELETE /api/admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	if err := h.categories.DeleteCategory(id); err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "删除成功", nil)
}
