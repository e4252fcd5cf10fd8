package router

import (
	"net/http"
	"testing"

	"members-club/internal/cache"
	"members-club/internal/database"
	"members-club/internal/session"
	"members-club/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	wp := worker.NewPool(1)
	defer wp.Stop()
	Setup(e, &database.FakeDB{}, session.NewManager(&cache.FakeCache{}, "secret"), wp)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /",
		http.MethodGet + " /signup",
		http.MethodPost + " /signup",
		http.MethodGet + " /login",
		http.MethodPost + " /login",
		http.MethodGet + " /logout",
		http.MethodGet + " /members",
		http.MethodGet + " /admin",
		http.MethodPost + " /admin/promote/:id",
		http.MethodPost + " /admin/demote/:id",
		http.MethodGet + " /static*",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestSetupErrorHandler(t *testing.T) {
	e := echo.New()
	wp := worker.NewPool(1)
	defer wp.Stop()
	Setup(e, &database.FakeDB{}, session.NewManager(&cache.FakeCache{}, "secret"), wp)
	require.NotNil(t, e.HTTPErrorHandler)
}
