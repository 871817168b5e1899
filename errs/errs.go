package errs

import "errors"

// 业务哨兵错误，handles 层统一映射为 HTTP 状态码
var (
	ErrValidation   = errors.New("参数校验失败")     // 400
	ErrNotFound     = errors.New("记录不存在")       // 404
	ErrConflict     = errors.New("名称已存在")       // 409
	ErrUnauthorized = errors.New("未认证或会话已过期") // 401
)
