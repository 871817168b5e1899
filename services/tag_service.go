package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"techlib/errs"
	"techlib/models"
)

// TagService 标签管理服务
// 负责标签的创建、改名、归类、删除和视频标签同步
// 所有写操作都要维护共现查询依赖的约束（名称唯一、关联表无悬挂引用）
type TagService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTagService 创建标签服务
func NewTagService(db *gorm.DB, logger *zap.Logger) *TagService {
	return &TagService{db: db, logger: logger}
}

// TagInfo 标签及其使用情况
type TagInfo struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	CategoryID   *uint  `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	VideoCount   int64  `json:"video_count"`
}

// NormalizeTagName 标签名归一化：小写 + 去首尾空格
// "Side Control" 和 "side control " 视为同一个标签
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateOrGetTag 按名称查找或创建标签（幂等）
// 同名并发创建由唯一索引兜底：插入撞唯一约束就当别人刚创建成功，回读即可
func (s *TagService) CreateOrGetTag(name string) (*models.Tag, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return nil, fmt.Errorf("%w: 标签名不能为空", errs.ErrValidation)
	}

	var tag *models.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		tag, err = findOrCreateTag(tx, normalized)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// findOrCreateTag 先查后插，插入失败再回读
// name 必须已归一化
func findOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询标签失败: %w", err)
	}

	tag = models.Tag{Name: name}
	if createErr := tx.Create(&tag).Error; createErr != nil {
		// 唯一索引冲突说明并发创建，回读那一条
		if fetchErr := tx.Where("name = ?", name).First(&tag).Error; fetchErr != nil {
			return nil, fmt.Errorf("创建标签失败: %w", createErr)
		}
	}
	return &tag, nil
}

// RenameTag 标签改名（就地更新，保留全部视频关联）
func (s *TagService) RenameTag(id uint, newName string) (*models.Tag, error) {
	normalized := NormalizeTagName(newName)
	if normalized == "" {
		return nil, fmt.Errorf("%w: 标签名不能为空", errs.ErrValidation)
	}

	var tag models.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 标签 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询标签失败: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Tag{}).
			Where("name = ? AND id <> ?", normalized, id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("查询标签失败: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: 标签 %q", errs.ErrConflict, normalized)
		}

		tag.Name = normalized
		if err := tx.Save(&tag).Error; err != nil {
			return fmt.Errorf("更新标签失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// RecategorizeTag 调整标签所属分类，categoryID 为 nil 表示移到未分类
func (s *TagService) RecategorizeTag(id uint, categoryID *uint) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 标签 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询标签失败: %w", err)
		}

		if categoryID != nil {
			var category models.TagCategory
			if err := tx.First(&category, *categoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: 分类 %d", errs.ErrNotFound, *categoryID)
				}
				return fmt.Errorf("查询分类失败: %w", err)
			}
		}

		if err := tx.Model(&tag).Update("category_id", categoryID).Error; err != nil {
			return fmt.Errorf("更新标签失败: %w", err)
		}
		tag.CategoryID = categoryID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag 删除标签并级联删除其全部视频关联（视频本身不动）
func (s *TagService) DeleteTag(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 标签 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询标签失败: %w", err)
		}

		if err := tx.Where("tag_id = ?", id).Delete(&models.VideoTag{}).Error; err != nil {
			return fmt.Errorf("删除标签关联失败: %w", err)
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return fmt.Errorf("删除标签失败: %w", err)
		}

		s.logger.Info("标签已删除", zap.Uint("tag_id", id), zap.String("name", tag.Name))
		return nil
	})
}

// SyncVideoTags 用给定名称列表整体替换视频的标签集合
// 不在列表里的旧关联会被移除，缺的会补上，结束时关联集合与入参完全一致
func (s *TagService) SyncVideoTags(videoID uint, tagNames []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return syncVideoTagsTx(tx, videoID, tagNames)
	})
}

// syncVideoTagsTx 同步逻辑本体，供视频创建/更新在自己的事务里复用
func syncVideoTagsTx(tx *gorm.DB, videoID uint, tagNames []string) error {
	var video models.Video
	if err := tx.First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 视频 %d", errs.ErrNotFound, videoID)
		}
		return fmt.Errorf("查询视频失败: %w", err)
	}

	// 归一化 + 去重，空名直接跳过
	seen := make(map[string]struct{}, len(tagNames))
	desired := make([]uint, 0, len(tagNames))
	for _, name := range tagNames {
		normalized := NormalizeTagName(name)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}

		tag, err := findOrCreateTag(tx, normalized)
		if err != nil {
			return err
		}
		desired = append(desired, tag.ID)
	}

	// 移除不在新列表里的旧关联
	cleanup := tx.Where("video_id = ?", videoID)
	if len(desired) > 0 {
		cleanup = cleanup.Where("tag_id NOT IN ?", desired)
	}
	if err := cleanup.Delete(&models.VideoTag{}).Error; err != nil {
		return fmt.Errorf("删除旧标签关联失败: %w", err)
	}

	// 补上缺的关联
	var existing []uint
	if err := tx.Model(&models.VideoTag{}).
		Where("video_id = ?", videoID).
		Pluck("tag_id", &existing).Error; err != nil {
		return fmt.Errorf("查询标签关联失败: %w", err)
	}
	existingSet := make(map[uint]struct{}, len(existing))
	for _, tagID := range existing {
		existingSet[tagID] = struct{}{}
	}
	for _, tagID := range desired {
		if _, ok := existingSet[tagID]; ok {
			continue
		}
		link := models.VideoTag{VideoID: videoID, TagID: tagID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("创建标签关联失败: %w", err)
		}
	}

	return nil
}

// ListTags 列出全部标签（按名称排序，附分类和使用次数）
func (s *TagService) ListTags() ([]TagInfo, error) {
	tags := []TagInfo{}
	err := s.db.Model(&models.Tag{}).
		Select("tags.id AS id, tags.name AS name, tags.category_id AS category_id, " +
			"tag_categories.name AS category_name, COUNT(video_tags.id) AS video_count").
		Joins("LEFT JOIN tag_categories ON tag_categories.id = tags.category_id").
		Joins("LEFT JOIN video_tags ON video_tags.tag_id = tags.id").
		Group("tags.id, tags.name, tags.category_id, tag_categories.name").
		Order("tags.name ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("查询标签列表失败: %w", err)
	}
	return tags, nil
}
