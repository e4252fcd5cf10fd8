// File: internal/session/session.go
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"members-club/internal/cache"
	"members-club/internal/model"

	"github.com/redis/go-redis/v9"
)

// TTL 會話固定存活時間，與 cookie 的 maxAge 一致（不滑動展延）
const TTL = time.Hour

const keyPrefix = "session:"

// ErrNotFound 會話不存在或已過期
var ErrNotFound = errors.New("session not found")

// timeNow 測試可覆寫此變數
var timeNow = time.Now

// Manager 以快取為後端的會話管理
// name 與 role 在發行時快照進會話，之後的角色異動不回寫已發行的會話
type Manager struct {
	cache  cache.Cache
	secret []byte
}

// NewManager 建立會話管理；secret 用於 cookie 值的 HMAC 簽章
func NewManager(c cache.Cache, secret string) *Manager {
	return &Manager{cache: c, secret: []byte(secret)}
}

// Issue 產生不可猜測的 token 並寫入會話紀錄，過期時間為 now + TTL
func (m *Manager) Issue(ctx context.Context, user *model.User) (*model.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("Issue: %w", err)
	}
	s := &model.Session{
		Token:     token,
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		ExpiresAt: timeNow().Add(TTL),
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("Issue: %w", err)
	}
	if err := m.cache.Set(ctx, keyPrefix+token, payload, TTL).Err(); err != nil {
		return nil, fmt.Errorf("Issue: %w", err)
	}
	return s, nil
}

// Get 取回會話；不存在或已過期一律回 ErrNotFound
// Redis 的 TTL 已涵蓋自然過期，expires_at 檢查為惰性保險
func (m *Manager) Get(ctx context.Context, token string) (*model.Session, error) {
	data, err := m.cache.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	s := &model.Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if s.Expired(timeNow()) {
		_ = m.Destroy(ctx, token)
		return nil, ErrNotFound
	}
	return s, nil
}

// Destroy 刪除會話；對不存在的 token 為冪等
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if err := m.cache.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("Destroy: %w", err)
	}
	return nil
}

// newToken 產生 32 bytes 的隨機 token（hex 編碼）
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
