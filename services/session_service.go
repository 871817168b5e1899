package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"techlib/errs"
	"techlib/models"
)

// SessionService 管理员会话服务
// 签发/校验不透明会话令牌，管理类接口必须先过这里
type SessionService struct {
	db       *gorm.DB
	password string
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSessionService 创建会话服务
func NewSessionService(db *gorm.DB, password string, ttlHours int, logger *zap.Logger) *SessionService {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &SessionService{
		db:       db,
		password: password,
		ttl:      time.Duration(ttlHours) * time.Hour,
		logger:   logger,
	}
}

// Login 校验口令并签发会话
// 未配置口令时一律拒绝，避免空口令直接登录
func (s *SessionService) Login(password string) (*models.AdminSession, error) {
	if s.password == "" {
		return nil, fmt.Errorf("%w: 未配置管理员口令", errs.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return nil, fmt.Errorf("%w: 口令错误", errs.ErrUnauthorized)
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("生成会话令牌失败: %w", err)
	}

	now := time.Now().UTC()
	session := models.AdminSession{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}

	s.logger.Info("管理员登录成功", zap.Time("expires_at", session.ExpiresAt))
	return &session, nil
}

// Validate 校验会话令牌
// 过期的会话和不存在的会话表现完全一致：统一返回未认证，并顺手删掉过期行
func (s *SessionService) Validate(token string) error {
	if token == "" {
		return fmt.Errorf("%w: 缺少会话令牌", errs.ErrUnauthorized)
	}

	var session models.AdminSession
	err := s.db.Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 会话不存在", errs.ErrUnauthorized)
		}
		return fmt.Errorf("查询会话失败: %w", err)
	}

	if !session.Valid(time.Now().UTC()) {
		// 惰性清理：访问到过期行时直接删除
		s.db.Delete(&session)
		return fmt.Errorf("%w: 会话已过期", errs.ErrUnauthorized)
	}
	return nil
}

// Logout 注销会话（令牌不存在也算成功）
func (s *SessionService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := s.db.Where("token = ?", token).Delete(&models.AdminSession{}).Error; err != nil {
		return fmt.Errorf("删除会话失败: %w", err)
	}
	return nil
}

// CleanupExpired 清理过期会话，返回删除条数
// 只是定期垃圾回收，有效性判定不依赖它
func (s *SessionService) CleanupExpired() (int64, error) {
	result := s.db.Where("expires_at <= ?", time.Now().UTC()).Delete(&models.AdminSession{})
	if result.Error != nil {
		return 0, fmt.Errorf("清理过期会话失败: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.logger.Info("已清理过期会话", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// generateToken 生成32字节随机令牌，hex编码后64字符
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
