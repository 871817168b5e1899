package handles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techlib/services"
	"techlib/utils"
)

// VideoHandler 视频API处理器
type VideoHandler struct {
	videos *services.VideoService
}

// NewVideoHandler 创建视频处理器
func NewVideoHandler(videos *services.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// videoRequest 创建/更新视频的请求体
type videoRequest struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Tags  []string `json:"tags"`
}

// GetVideos 获取视频列表
// GET /api/videos?page=1&limit=20&search=xxx&tag_ids=1,2,3
func (h *VideoHandler) GetVideos(c *gin.Context) {
	params := services.VideoListParams{
		Page:   parsePositiveInt(c, "page", 1),
		Limit:  parsePositiveInt(c, "limit", 20),
		Search: c.Query("search"),
		TagIDs: parseTagIDs(c),
	}

	result, err := h.videos.List(params)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, "success", gin.H{
		"list":  result.Videos,
		"total": result.Total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// GetVideo 获取单个视频详情
// GET /api/videos/:id
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	video, err := h.videos.Get(id)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "success", video)
}

// CreateVideo 创建视频
// POST /api/admin/videos
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	video, err := h.videos.Create(req.Title, req.URL, req.Tags)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "创建成功", video)
}

// UpdateVideo 更新视频
// PUT /api/admin/videos/:id
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	video, err := h.videos.Update(id, req.Title, req.URL, req.Tags)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "更新成功", video)
}

// DeleteVideo 删除视频
// DELETE /api/admin/videos/:id
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.Fail(c, http.StatusBadRequest, "ID参数非法")
		return
	}

	if err := h.videos.Delete(id); err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, "删除成功", nil)
}
