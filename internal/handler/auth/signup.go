// File: internal/handler/auth/signup.go
package auth

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"members-club/internal/api"
	"members-club/internal/database"
	"members-club/internal/service"
	"members-club/internal/session"
	"members-club/internal/store"
	"members-club/internal/worker"

	"github.com/labstack/echo/v4"
)

// 測試可覆寫
var (
	signupFn = service.Signup
	loginFn  = service.Login
	logoutFn = service.Logout
)

// SignupPageHandler 渲染註冊表單
func SignupPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "signup.html", map[string]any{"Error": nil})
	}
}

// SignupHandler 處理註冊表單：驗證、建帳號、發行會話後導向 /members
func SignupHandler(db database.DB, sessions *session.Manager, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignupRequest
		if err := c.Bind(&req); err != nil {
			return c.Render(http.StatusBadRequest, "signup.html", map[string]any{"Error": "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.Render(http.StatusBadRequest, "signup.html", map[string]any{"Error": err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.Render(http.StatusBadRequest, "signup.html", map[string]any{"Error": "invalid email format"})
		}

		s, err := signupFn(c.Request().Context(), db, sessions, wp, req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				return c.Render(http.StatusConflict, "signup.html", map[string]any{"Error": "Email already exists or a server error."})
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}

		c.SetCookie(sessions.NewCookie(s))
		return c.Redirect(http.StatusFound, "/members")
	}
}
