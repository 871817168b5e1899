package models

import "time"

// Video 视频模型
// 视频本体托管在外部站点（YouTube / Vimeo），这里只存链接和元信息
type Video struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title string `gorm:"size:500;not null;index" json:"title"`
	URL   string `gorm:"size:1000;not null" json:"url"`

	// 时长，格式 H:MM:SS 或 M:SS，获取失败时为空
	Duration string `gorm:"size:20" json:"duration"`
}

// TableName 指定表名
func (Video) TableName() string {
	return "videos"
}

// VideoTag 视频-标签关联表
// (video_id, tag_id) 唯一，标签共现查询都在这张表上做
type VideoTag struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VideoID uint `gorm:"uniqueIndex:idx_video_tag;index;not null" json:"video_id"`
	TagID   uint `gorm:"uniqueIndex:idx_video_tag;index;not null" json:"tag_id"`
}

// TableName 指定表名
func (VideoTag) TableName() string {
	return "video_tags"
}
