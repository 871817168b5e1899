package models

import "time"

// Tag 标签模型
// 名称全局唯一（统一存储为小写、去首尾空格后的形式）
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	// 所属分类，可为空（空 = 未分类）
	CategoryID *uint        `gorm:"index" json:"category_id"`
	Category   *TagCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
