package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"techlib/errs"
	"techlib/models"
)

// VideoService 视频查询和管理服务
type VideoService struct {
	db        *gorm.DB
	facets    *FacetService
	durations DurationFetcher // 可为 nil，表示不获取时长
	logger    *zap.Logger
}

// NewVideoService 创建视频服务
func NewVideoService(db *gorm.DB, facets *FacetService, durations DurationFetcher, logger *zap.Logger) *VideoService {
	return &VideoService{db: db, facets: facets, durations: durations, logger: logger}
}

// VideoListParams 列表查询参数
type VideoListParams struct {
	Page   int    // 从1开始，非法值回退到1
	Limit  int    // 每页条数，非法值回退到20
	Search string // 标题子串匹配，不区分大小写
	TagIDs []uint // 标签过滤（交集语义），空 = 不过滤
}

// VideoWithTags 视频及其标签列表（标签按名称排序）
type VideoWithTags struct {
	models.Video
	Tags []TagBrief `json:"tags"`
}

// VideoPage 分页结果
// Total 是过滤后的总条数（不是本页条数），前端用它算总页数
type VideoPage struct {
	Videos []VideoWithTags `json:"videos"`
	Total  int64           `json:"total"`
}

// List 分页查询视频
// 有标签过滤时先用共现引擎求交集，再做标题搜索和分页
// 整个查询在一个事务里执行，保证读到同一份数据
func (s *VideoService) List(params VideoListParams) (*VideoPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}

	result := &VideoPage{Videos: []VideoWithTags{}}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Video{})

		tagIDs := dedupeIDs(params.TagIDs)
		if len(tagIDs) > 0 {
			videoIDs, err := s.facets.MatchingVideoIDs(tx, tagIDs)
			if err != nil {
				return err
			}
			if len(videoIDs) == 0 {
				return nil // 没有视频同时带齐这些标签，正常返回空页
			}
			query = query.Where("id IN ?", videoIDs)
		}

		if search := strings.TrimSpace(params.Search); search != "" {
			query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
		}

		if err := query.Count(&result.Total).Error; err != nil {
			return fmt.Errorf("统计视频数失败: %w", err)
		}

		var videos []models.Video
		offset := (page - 1) * limit
		if err := query.
			Order("created_at DESC, id DESC").
			Limit(limit).
			Offset(offset).
			Find(&videos).Error; err != nil {
			return fmt.Errorf("查询视频列表失败: %w", err)
		}

		hydrated, err := hydrateTags(tx, videos)
		if err != nil {
			return err
		}
		result.Videos = hydrated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get 查询单个视频（含标签）
func (s *VideoService) Get(id uint) (*VideoWithTags, error) {
	var out *VideoWithTags
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var video models.Video
		if err := tx.First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 视频 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询视频失败: %w", err)
		}

		hydrated, err := hydrateTags(tx, []models.Video{video})
		if err != nil {
			return err
		}
		out = &hydrated[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create 创建视频并同步标签
// 时长获取是尽力而为：外部接口失败只记日志，不阻塞创建
func (s *VideoService) Create(title, url string, tagNames []string) (*VideoWithTags, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" {
		return nil, fmt.Errorf("%w: 标题不能为空", errs.ErrValidation)
	}
	if url == "" {
		return nil, fmt.Errorf("%w: 视频链接不能为空", errs.ErrValidation)
	}

	duration := s.fetchDuration(url)

	video := models.Video{
		Title:     title,
		URL:       url,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&video).Error; err != nil {
			return fmt.Errorf("创建视频失败: %w", err)
		}
		return syncVideoTagsTx(tx, video.ID, tagNames)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("视频已创建", zap.Uint("video_id", video.ID), zap.String("title", title))
	return s.Get(video.ID)
}

// Update 更新视频并整体替换标签集合
func (s *VideoService) Update(id uint, title, url string, tagNames []string) (*VideoWithTags, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" {
		return nil, fmt.Errorf("%w: 标题不能为空", errs.ErrValidation)
	}
	if url == "" {
		return nil, fmt.Errorf("%w: 视频链接不能为空", errs.ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var video models.Video
		if err := tx.First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 视频 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询视频失败: %w", err)
		}

		video.Title = title
		video.URL = url
		if err := tx.Save(&video).Error; err != nil {
			return fmt.Errorf("更新视频失败: %w", err)
		}
		return syncVideoTagsTx(tx, id, tagNames)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete 删除视频并级联删除标签关联
func (s *VideoService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var video models.Video
		if err := tx.First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 视频 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询视频失败: %w", err)
		}

		if err := tx.Where("video_id = ?", id).Delete(&models.VideoTag{}).Error; err != nil {
			return fmt.Errorf("删除标签关联失败: %w", err)
		}
		if err := tx.Delete(&video).Error; err != nil {
			return fmt.Errorf("删除视频失败: %w", err)
		}

		s.logger.Info("视频已删除", zap.Uint("video_id", id), zap.String("title", video.Title))
		return nil
	})
}

// fetchDuration 调外部接口获取时长，失败返回空串
func (s *VideoService) fetchDuration(url string) string {
	if s.durations == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	duration, err := s.durations.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("获取视频时长失败", zap.String("url", url), zap.Error(err))
		return ""
	}
	return duration
}

// hydrateTags 批量装填标签列表，保持视频原有顺序，标签按名称排序
func hydrateTags(tx *gorm.DB, videos []models.Video) ([]VideoWithTags, error) {
	out := make([]VideoWithTags, 0, len(videos))
	if len(videos) == 0 {
		return out, nil
	}

	videoIDs := make([]uint, 0, len(videos))
	for _, video := range videos {
		videoIDs = append(videoIDs, video.ID)
	}

	var rows []struct {
		VideoID uint
		TagID   uint
		Name    string
	}
	err := tx.Model(&models.VideoTag{}).
		Select("video_tags.video_id AS video_id, tags.id AS tag_id, tags.name AS name").
		Joins("JOIN tags ON tags.id = video_tags.tag_id").
		Where("video_tags.video_id IN ?", videoIDs).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询视频标签失败: %w", err)
	}

	byVideo := make(map[uint][]TagBrief, len(videos))
	for _, row := range rows {
		byVideo[row.VideoID] = append(byVideo[row.VideoID], TagBrief{ID: row.TagID, Name: row.Name})
	}

	for _, video := range videos {
		tags := byVideo[video.ID]
		if tags == nil {
			tags = []TagBrief{}
		}
		out = append(out, VideoWithTags{Video: video, Tags: tags})
	}
	return out, nil
}
