// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"members-club/internal/api"
	"members-club/internal/database"
	"members-club/internal/service"
	"members-club/internal/session"
	"members-club/internal/worker"

	"github.com/labstack/echo/v4"
)

// 登入失敗一律回同一訊息，不分辨帳號不存在或密碼錯誤
const loginFailedMessage = "User and Password are not found."

// LoginPageHandler 渲染登入表單
func LoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "login.html", map[string]any{"Error": nil})
	}
}

// LoginHandler 驗證憑證並發行會話後導向 /members
func LoginHandler(db database.DB, sessions *session.Manager, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.Render(http.StatusBadRequest, "login.html", map[string]any{"Error": "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.Render(http.StatusBadRequest, "login.html", map[string]any{"Error": "Email and Password are required."})
		}

		req.Email = strings.ToLower(req.Email)

		s, err := loginFn(c.Request().Context(), db, sessions, wp, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return c.Render(http.StatusUnauthorized, "login.html", map[string]any{"Error": loginFailedMessage})
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}

		c.SetCookie(sessions.NewCookie(s))
		return c.Redirect(http.StatusFound, "/members")
	}
}
