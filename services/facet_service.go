package services

import (
	"fmt"

	"gorm.io/gorm"

	"techlib/models"
)

// FacetService 标签共现查询服务
// 核心逻辑：给定已选标签集合，算出
//  1. 同时带有全部已选标签的视频集合（交集，不是并集）
//  2. 还值得继续点选的标签（与当前结果共现、且能进一步缩小结果的标签）
type FacetService struct {
	db *gorm.DB
}

// NewFacetService 创建标签共现服务
func NewFacetService(db *gorm.DB) *FacetService {
	return &FacetService{db: db}
}

// AvailableTag 可继续筛选的标签
type AvailableTag struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"` // 当前结果集内带该标签的视频数
}

// FacetResult 筛选结果概览
type FacetResult struct {
	VideoCount int64          `json:"video_count"`
	Tags       []AvailableTag `json:"tags"`
}

// MatchingVideoIDs 操作A：求同时带有 tagIDs 中全部标签的视频ID
// tagIDs 去重后参与计算；不存在的标签ID不会报错，只会让结果为空
// tagIDs 为空时不应调用本方法（空选择 = 不过滤，由调用方兜底）
func (s *FacetService) MatchingVideoIDs(tx *gorm.DB, tagIDs []uint) ([]uint, error) {
	ids := dedupeIDs(tagIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	// 交集语义：视频上命中的已选标签数 == 已选标签总数
	var videoIDs []uint
	err := tx.Model(&models.VideoTag{}).
		Where("tag_id IN ?", ids).
		Group("video_id").
		Having("COUNT(DISTINCT tag_id) = ?", len(ids)).
		Pluck("video_id", &videoIDs).Error
	if err != nil {
		return nil, fmt.Errorf("查询匹配视频失败: %w", err)
	}

	return videoIDs, nil
}

// Facets 操作A+B：在同一个事务里算出匹配视频数和可继续筛选的标签
// 两步必须读到同一份数据，否则并发写入会让分母和分子对不上
func (s *FacetService) Facets(tagIDs []uint) (*FacetResult, error) {
	selected := dedupeIDs(tagIDs)
	result := &FacetResult{Tags: []AvailableTag{}}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 空选择：不过滤，返回全部标签目录
		if len(selected) == 0 {
			if err := tx.Model(&models.Video{}).Count(&result.VideoCount).Error; err != nil {
				return fmt.Errorf("统计视频总数失败: %w", err)
			}
			tags, err := s.allTags(tx)
			if err != nil {
				return err
			}
			result.Tags = tags
			return nil
		}

		videoIDs, err := s.MatchingVideoIDs(tx, selected)
		if err != nil {
			return err
		}
		result.VideoCount = int64(len(videoIDs))
		if len(videoIDs) == 0 {
			return nil
		}

		tags, err := s.availableWithin(tx, selected, videoIDs)
		if err != nil {
			return err
		}
		result.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// availableWithin 操作B：在视频集合 videoIDs 内找可继续点选的标签
// 规则：
//   - 已选标签不再返回
//   - 共现数为 0 的不返回（内连接天然排除）
//   - 共现数 == |videoIDs| 的不返回：全集共有的标签点了也缩不小结果，没有筛选价值
//     这条排除是本功能的关键，不能简化成"有共现就返回"
func (s *FacetService) availableWithin(tx *gorm.DB, selected []uint, videoIDs []uint) ([]AvailableTag, error) {
	tags := []AvailableTag{}
	err := tx.Model(&models.VideoTag{}).
		Select("tags.id AS id, tags.name AS name, COUNT(video_tags.video_id) AS count").
		Joins("JOIN tags ON tags.id = video_tags.tag_id").
		Where("video_tags.video_id IN ?", videoIDs).
		Where("video_tags.tag_id NOT IN ?", selected).
		Group("tags.id, tags.name").
		Having("COUNT(video_tags.video_id) < ?", len(videoIDs)).
		Order("tags.name ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("查询可用标签失败: %w", err)
	}
	return tags, nil
}

// allTags 空选择时退化为全部标签目录（按名称排序，附使用次数）
func (s *FacetService) allTags(tx *gorm.DB) ([]AvailableTag, error) {
	tags := []AvailableTag{}
	err := tx.Model(&models.Tag{}).
		Select("tags.id AS id, tags.name AS name, COUNT(video_tags.id) AS count").
		Joins("LEFT JOIN video_tags ON video_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("查询标签目录失败: %w", err)
	}
	return tags, nil
}

// dedupeIDs 去重，保持首次出现的顺序
func dedupeIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
