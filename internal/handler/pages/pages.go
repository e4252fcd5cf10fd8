// File: internal/handler/pages/pages.go
package pages

import (
	"errors"
	"math/rand"
	"net/http"

	"members-club/internal/middleware"
	"members-club/internal/model"

	"github.com/labstack/echo/v4"
)

// memberImages 會員頁隨機挑選的固定圖片清單
var memberImages = []string{
	"brucey-of-thrones.jpg",
	"brucey-potter.jpg",
	"trailer-park-brucey.jpg",
}

// pickImage 測試可覆寫
var pickImage = func() string {
	return memberImages[rand.Intn(len(memberImages))]
}

// HomeHandler 渲染首頁，有會話時帶出使用者名稱
func HomeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var name string
		if s, ok := c.Get(middleware.ContextUserKey).(*model.Session); ok {
			name = s.Name
		}
		return c.Render(http.StatusOK, "home.html", map[string]any{"Name": name})
	}
}

// MembersHandler 渲染會員頁與隨機圖片
func MembersHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		s := c.Get(middleware.ContextUserKey).(*model.Session)
		return c.Render(http.StatusOK, "members.html", map[string]any{
			"Name":  s.Name,
			"Image": pickImage(),
		})
	}
}

// ErrorHandler 未匹配路由渲染 404 頁，其餘沿用狀態碼回純文字
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := "server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
		if code == http.StatusNotFound {
			if rerr := c.Render(http.StatusNotFound, "404.html", nil); rerr != nil {
				c.Logger().Error(rerr)
			}
			return
		}
		if rerr := c.String(code, message); rerr != nil {
			c.Logger().Error(rerr)
		}
	}
}
