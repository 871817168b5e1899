package models

import "time"

// TagCategory 标签分类模型
type TagCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	// 排序值，前端按 display_order, id 升序展示
	DisplayOrder int `gorm:"index;default:0" json:"display_order"`
}

// TableName 指定表名
func (TagCategory) TableName() string {
	return "tag_categories"
}
