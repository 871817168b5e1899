package models

import "time"

// AdminSession 管理员会话
// Token 为 32 字节随机数的 hex 编码，作为主键
// 有效性判定始终以 ExpiresAt 为准，过期行未清理也不可用
type AdminSession struct {
	Token     string    `gorm:"primaryKey;size:64" json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

// TableName 指定表名
func (AdminSession) TableName() string {
	return "admin_sessions"
}

// Valid 判断会话在给定时刻是否有效
func (s *AdminSession) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
