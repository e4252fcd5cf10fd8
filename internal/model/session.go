// File: internal/model/session.go
package model

import "time"

// Session 伺服器端會話紀錄，name 與 role 為發行當下的快照
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 回報會話是否已過期
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsAdmin 回報會話快照中的角色是否為管理員
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
