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

// CategoryService 标签分类管理服务
type CategoryService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCategoryService 创建分类服务
func NewCategoryService(db *gorm.DB, logger *zap.Logger) *CategoryService {
	return &CategoryService{db: db, logger: logger}
}

// CategoryWithTags 分类及其成员标签
type CategoryWithTags struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	DisplayOrder int        `json:"display_order"`
	Tags         []TagBrief `json:"tags"`
}

// TagBrief 标签摘要（id + 名称）
type TagBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateCategory 创建分类，排序值追加到末尾
func (s *CategoryService) CreateCategory(name string) (*models.TagCategory, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: 分类名不能为空", errs.ErrValidation)
	}

	var category models.TagCategory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TagCategory{}).
			Where("name = ?", trimmed).
			Count(&count).Error; err != nil {
			return fmt.Errorf("查询分类失败: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: 分类 %q", errs.ErrConflict, trimmed)
		}

		// 新分类排在最后
		var maxOrder int64
		if err := tx.Model(&models.TagCategory{}).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return fmt.Errorf("查询排序值失败: %w", err)
		}

		category = models.TagCategory{Name: trimmed, DisplayOrder: int(maxOrder) + 1}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("创建分类失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// RenameCategory 分类改名
func (s *CategoryService) RenameCategory(id uint, newName string) (*models.TagCategory, error) {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: 分类名不能为空", errs.ErrValidation)
	}

	var category models.TagCategory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 分类 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询分类失败: %w", err)
		}

		var count int64
		if err := tx.Model(&models.TagCategory{}).
			Where("name = ? AND id <> ?", trimmed, id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("查询分类失败: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: 分类 %q", errs.ErrConflict, trimmed)
		}

		category.Name = trimmed
		if err := tx.Save(&category).Error; err != nil {
			return fmt.Errorf("更新分类失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// MoveCategory 上移/下移分类：与相邻分类交换排序值
// direction 取 "up" 或 "down"；已经在边上时是空操作
// 整个交换在一个事务里完成，并发调用不会丢分类
// 列表始终按 display_order, id 排序，即使出现短暂重复排序值也不会有行消失
func (s *CategoryService) MoveCategory(id uint, direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("%w: 方向只能是 up 或 down", errs.ErrValidation)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.TagCategory
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 分类 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询分类失败: %w", err)
		}

		// 找相邻分类（删除后排序值可能不连续，按大小关系找而不是 ±1）
		var neighbor models.TagCategory
		var err error
		if direction == "up" {
			err = tx.Where("display_order < ? OR (display_order = ? AND id < ?)",
				category.DisplayOrder, category.DisplayOrder, category.ID).
				Order("display_order DESC, id DESC").
				First(&neighbor).Error
		} else {
			err = tx.Where("display_order > ? OR (display_order = ? AND id > ?)",
				category.DisplayOrder, category.DisplayOrder, category.ID).
				Order("display_order ASC, id ASC").
				First(&neighbor).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // 已经在边上
			}
			return fmt.Errorf("查询相邻分类失败: %w", err)
		}

		// 交换排序值
		if err := tx.Model(&models.TagCategory{}).Where("id = ?", category.ID).
			Update("display_order", neighbor.DisplayOrder).Error; err != nil {
			return fmt.Errorf("更新排序值失败: %w", err)
		}
		if err := tx.Model(&models.TagCategory{}).Where("id = ?", neighbor.ID).
			Update("display_order", category.DisplayOrder).Error; err != nil {
			return fmt.Errorf("更新排序值失败: %w", err)
		}
		return nil
	})
}

// DeleteCategory 删除分类，成员标签原子地回到未分类（不删标签）
func (s *CategoryService) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.TagCategory
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 分类 %d", errs.ErrNotFound, id)
			}
			return fmt.Errorf("查询分类失败: %w", err)
		}

		if err := tx.Model(&models.Tag{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("解除标签分类失败: %w", err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("删除分类失败: %w", err)
		}

		s.logger.Info("分类已删除", zap.Uint("category_id", id), zap.String("name", category.Name))
		return nil
	})
}

// ListCategories 列出全部分类（按排序值），各分类内标签按名称排序
func (s *CategoryService) ListCategories() ([]CategoryWithTags, error) {
	var categories []models.TagCategory
	if err := s.db.Order("display_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("查询分类列表失败: %w", err)
	}

	var tags []models.Tag
	if err := s.db.Where("category_id IS NOT NULL").Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("查询分类标签失败: %w", err)
	}

	byCategory := make(map[uint][]TagBrief, len(categories))
	for _, tag := range tags {
		byCategory[*tag.CategoryID] = append(byCategory[*tag.CategoryID], TagBrief{ID: tag.ID, Name: tag.Name})
	}

	out := make([]CategoryWithTags, 0, len(categories))
	for _, category := range categories {
		members := byCategory[category.ID]
		if members == nil {
			members = []TagBrief{}
		}
		out = append(out, CategoryWithTags{
			ID:           category.ID,
			Name:         category.Name,
			DisplayOrder: category.DisplayOrder,
			Tags:         members,
		})
	}
	return out, nil
}
