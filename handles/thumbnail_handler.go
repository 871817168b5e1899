package handles

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"techlib/services"
	"techlib/utils"
)

var vimeoIDPattern = regexp.MustCompile(`vimeo\.com/(\d+)`)

// ThumbnailHandler 缩略图地址处理器
// 从视频链接推导托管站的封面图地址，结果进有界缓存
// 和标签数据完全无关，只消费视频URL
type ThumbnailHandler struct {
	videos *services.VideoService
	cache  *utils.TTLCache
}

// NewThumbnailHandler 创建缩略图处理器
func NewThumbnailHandler(videos *services.VideoService) *ThumbnailHandler {
	return &ThumbnailHandler{
		videos: videos,
		cache:  utils.NewTTLCache(24*time.Hour, 2048),
	}
}

// GetThumbnail 获取视频缩略图地址
// GET /api/videos/:id/thumbnail
func (h *ThumbnailHandler) GetThumbnail(c *gin.Context) {
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

	if cached, ok := h.cache.Get(video.URL); ok {
		utils.OK(c, "success", gin.H{"thumbnail": cached})
		return
	}

	thumbnail := deriveThumbnailURL(video.URL)
	if thumbnail == "" {
		utils.Fail(c, http.StatusNotFound, "无法识别的视频链接")
		return
	}

	h.cache.Set(video.URL, thumbnail)
	utils.OK(c, "success", gin.H{"thumbnail": thumbnail})
}

// deriveThumbnailURL 根据视频链接推导缩略图地址
// 支持 YouTube（watch?v= / youtu.be / shorts）和 Vimeo，识别不了返回空串
func deriveThumbnailURL(videoURL string) string {
	if id := youtubeVideoID(videoURL); id != "" {
		return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id)
	}
	if m := vimeoIDPattern.FindStringSubmatch(videoURL); m != nil {
		return fmt.Sprintf("https://vumbnail.com/%s.jpg", m[1])
	}
	return ""
}

// youtubeVideoID 从各种YouTube链接形态里取视频ID
func youtubeVideoID(videoURL string) string {
	parsed, err := url.Parse(videoURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := parsed.Query().Get("v"); id != "" {
			return id
		}
		// shorts/ 和 embed/ 形态
		for _, prefix := range []string{"/shorts/", "/embed/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				return strings.Trim(strings.TrimPrefix(parsed.Path, prefix), "/")
			}
		}
	case "youtu.be":
		return strings.Trim(parsed.Path, "/")
	}
	return ""
}
