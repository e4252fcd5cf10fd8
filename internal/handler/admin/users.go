// File: internal/handler/admin/users.go
package admin

import (
	"errors"
	"net/http"
	"strconv"

	"members-club/internal/database"
	"members-club/internal/model"
	"members-club/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試可覆寫
var (
	listUsers      = store.ListUsers
	updateUserRole = store.UpdateUserRole
)

// ListUsersHandler 渲染全部使用者清單
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
		return c.Render(http.StatusOK, "admin.html", map[string]any{"Users": users})
	}
}

// PromoteUserHandler 將目標使用者設為 admin
// 已發行的會話不受影響，重新登入才會取得新角色
func PromoteUserHandler(db database.DB) echo.HandlerFunc {
	return updateRoleHandler(db, model.RoleAdmin)
}

// DemoteUserHandler 將目標使用者設回 user
func DemoteUserHandler(db database.DB) echo.HandlerFunc {
	return updateRoleHandler(db, model.RoleUser)
}

func updateRoleHandler(db database.DB, role model.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
		}
		if err := updateUserRole(c.Request().Context(), db, id, role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "user not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
}
