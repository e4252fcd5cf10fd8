package middleware

import (
	"errors"
	"net/http"

	"members-club/internal/model"
	"members-club/internal/session"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "session"

func resolveSession(c echo.Context, sessions *session.Manager) (*model.Session, error) {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, session.ErrNotFound
	}
	token, err := sessions.TokenFromCookie(cookie.Value)
	if err != nil {
		return nil, session.ErrNotFound
	}
	return sessions.Get(c.Request().Context(), token)
}

// RequireSession 驗證會話並將快照掛進請求上下文，未登入導回首頁
func RequireSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := resolveSession(c, sessions)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return c.Redirect(http.StatusFound, "/")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable")
			}
			c.Set(ContextUserKey, s)
			return next(c)
		}
	}
}

// RequireAdmin 在 RequireSession 之上檢查會話快照中的角色
// 角色以發行當下為準，升降權後需重新登入才生效
func RequireAdmin(sessions *session.Manager) echo.MiddlewareFunc {
	requireSession := RequireSession(sessions)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireSession(func(c echo.Context) error {
			s := c.Get(ContextUserKey).(*model.Session)
			if !s.IsAdmin() {
				return c.Render(http.StatusForbidden, "403.html", map[string]any{
					"Message": "You are not listed as an admin and cannot access this page.",
				})
			}
			return next(c)
		})
	}
}

// OptionalSession 首頁用：有有效會話就掛進上下文，沒有也放行
func OptionalSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s, err := resolveSession(c, sessions); err == nil {
				c.Set(ContextUserKey, s)
			}
			return next(c)
		}
	}
}
