// File: internal/session/cookie.go
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"members-club/internal/model"
)

// CookieName 會話 cookie 名稱
const CookieName = "session_token"

// ErrBadCookie cookie 值格式錯誤或簽章不符
var ErrBadCookie = errors.New("invalid session cookie")

// NewCookie 產生承載已簽章 token 的會話 cookie，maxAge 與 TTL 一致
func (m *Manager) NewCookie(s *model.Session) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(s.Token),
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie 產生立即失效的會話 cookie，用於登出
func (m *Manager) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromCookie 驗證簽章並取出 token，格式不符回 ErrBadCookie
func (m *Manager) TokenFromCookie(value string) (string, error) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", ErrBadCookie
	}
	if !hmac.Equal([]byte(sig), []byte(m.mac(token))) {
		return "", ErrBadCookie
	}
	return token, nil
}

// sign 將 token 與其 HMAC 簽章組成 cookie 值
func (m *Manager) sign(token string) string {
	return token + "." + m.mac(token)
}

func (m *Manager) mac(token string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
