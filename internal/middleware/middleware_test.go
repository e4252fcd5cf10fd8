package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"members-club/internal/cache"
	"members-club/internal/model"
	"members-club/internal/session"
	"members-club/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// memCache 以 map 模擬快取後端
func memCache() *cache.FakeCache {
	data := map[string]string{}
	c := &cache.FakeCache{}
	c.SetFn = func(_ context.Context, k string, v any, _ time.Duration) *redis.StatusCmd {
		data[k] = string(v.([]byte))
		return redis.NewStatusResult("OK", nil)
	}
	c.GetFn = func(_ context.Context, k string) *redis.StringCmd {
		if v, ok := data[k]; ok {
			return redis.NewStringResult(v, nil)
		}
		return redis.NewStringResult("", redis.Nil)
	}
	c.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
		delete(data, keys[0])
		return redis.NewIntResult(1, nil)
	}
	return c
}

func newContext(cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Renderer = view.New()
	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireSession(t *testing.T) {
	sessions := session.NewManager(memCache(), "secret")
	s, err := sessions.Issue(context.Background(), &model.User{ID: 1, Name: "Alice", Role: model.RoleUser})
	require.NoError(t, err)

	// 有效會話放行並掛進上下文
	ctx, rec := newContext(sessions.NewCookie(s))
	called := false
	h := RequireSession(sessions)(func(c echo.Context) error {
		called = true
		got := c.Get(ContextUserKey).(*model.Session)
		require.Equal(t, s.Token, got.Token)
		require.Equal(t, "Alice", got.Name)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// 無 cookie 導回首頁
	ctx, rec = newContext(nil)
	called = false
	require.NoError(t, h(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	// 簽章被竄改
	bad := sessions.NewCookie(s)
	bad.Value = bad.Value + "x"
	ctx, rec = newContext(bad)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusFound, rec.Code)

	// 已銷毀的會話等同從未登入
	require.NoError(t, sessions.Destroy(context.Background(), s.Token))
	ctx, rec = newContext(sessions.NewCookie(s))
	called = false
	require.NoError(t, h(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusFound, rec.Code)
}

func TestRequireSessionStoreError(t *testing.T) {
	c := &cache.FakeCache{GetFn: func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", errors.New("redis down"))
	}}
	sessions := session.NewManager(c, "secret")
	s := &model.Session{Token: "tok"}

	ctx, _ := newContext(sessions.NewCookie(s))
	err := RequireSession(sessions)(func(echo.Context) error { return nil })(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusInternalServerError, he.Code)
}

func TestRequireAdmin(t *testing.T) {
	sessions := session.NewManager(memCache(), "secret")

	// admin 會話放行
	adminSess, err := sessions.Issue(context.Background(), &model.User{ID: 1, Name: "Boss", Role: model.RoleAdmin})
	require.NoError(t, err)
	ctx, rec := newContext(sessions.NewCookie(adminSess))
	called := false
	h := RequireAdmin(sessions)(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// 一般使用者吃 403
	userSess, err := sessions.Issue(context.Background(), &model.User{ID: 2, Name: "Alice", Role: model.RoleUser})
	require.NoError(t, err)
	ctx, rec = newContext(sessions.NewCookie(userSess))
	called = false
	require.NoError(t, h(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "not listed as an admin")

	// 未登入仍是導回首頁
	ctx, rec = newContext(nil)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusFound, rec.Code)
}

func TestRequireAdminStaleRole(t *testing.T) {
	// 升權前發行的會話不會自動取得 admin，要重新登入
	sessions := session.NewManager(memCache(), "secret")
	user := &model.User{ID: 2, Name: "Alice", Role: model.RoleUser}
	before, err := sessions.Issue(context.Background(), user)
	require.NoError(t, err)

	// 資料庫中的角色已變更
	user.Role = model.RoleAdmin

	ctx, rec := newContext(sessions.NewCookie(before))
	h := RequireAdmin(sessions)(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// 重新登入後的會話才帶新角色
	after, err := sessions.Issue(context.Background(), user)
	require.NoError(t, err)
	ctx, rec = newContext(sessions.NewCookie(after))
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalSession(t *testing.T) {
	sessions := session.NewManager(memCache(), "secret")
	s, err := sessions.Issue(context.Background(), &model.User{ID: 1, Name: "Alice", Role: model.RoleUser})
	require.NoError(t, err)

	h := OptionalSession(sessions)(func(c echo.Context) error {
		if sess, ok := c.Get(ContextUserKey).(*model.Session); ok {
			return c.String(http.StatusOK, sess.Name)
		}
		return c.String(http.StatusOK, "anonymous")
	})

	ctx, rec := newContext(sessions.NewCookie(s))
	require.NoError(t, h(ctx))
	require.Equal(t, "Alice", rec.Body.String())

	ctx, rec = newContext(nil)
	require.NoError(t, h(ctx))
	require.Equal(t, "anonymous", rec.Body.String())
}
