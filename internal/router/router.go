// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"members-club/internal/database"
	"members-club/internal/handler/admin"
	"members-club/internal/handler/auth"
	"members-club/internal/handler/pages"
	"members-club/internal/middleware"
	"members-club/internal/session"
	"members-club/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, sessions *session.Manager, wp worker.Pool) {
	e.HTTPErrorHandler = pages.ErrorHandler()
	e.Static("/static", "public")

	// 公開頁面
	e.GET("/", pages.HomeHandler(), middleware.OptionalSession(sessions))
	e.GET("/signup", auth.SignupPageHandler())
	e.POST("/signup", auth.SignupHandler(db, sessions, wp))
	e.GET("/login", auth.LoginPageHandler())
	e.POST("/login", auth.LoginHandler(db, sessions, wp))

	// 需登入
	e.GET("/logout", auth.LogoutHandler(sessions), middleware.RequireSession(sessions))
	e.GET("/members", pages.MembersHandler(), middleware.RequireSession(sessions))

	// 管理員專屬
	adminGroup := e.Group("/admin", middleware.RequireAdmin(sessions))
	adminGroup.GET("", admin.ListUsersHandler(db))
	adminGroup.POST("/promote/:id", admin.PromoteUserHandler(db))
	adminGroup.POST("/demote/:id", admin.DemoteUserHandler(db))
}
