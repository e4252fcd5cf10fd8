// File: internal/handler/auth/logout.go
package auth

import (
	"net/http"

	"members-club/internal/middleware"
	"members-club/internal/model"
	"members-club/internal/session"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 銷毀會話與 cookie 後導回首頁
func LogoutHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := c.Get(middleware.ContextUserKey).(*model.Session)
		if err := logoutFn(c.Request().Context(), sessions, s.Token); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
		c.SetCookie(sessions.ExpiredCookie())
		return c.Redirect(http.StatusFound, "/")
	}
}
