// File: /routes/routes_test.go
package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"xclub-api/config"
)

// Registers the full route tree against a bare engine and checks the paths
// clients depend on. Also catches wildcard conflicts, which gin reports by
// panicking during registration.
func TestSetupRoutesRegistersAPIPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{JWTSecret: "test-secret"}

	SetupRoutes(r, nil, cfg, nil, nil, nil, nil)

	want := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/challenges"},
		{"GET", "/api/v1/challenges/:id"},
		{"GET", "/api/v1/challenges/:id/participants"},
		{"GET", "/api/v1/challenges/:id/participants/pending"},
		{"POST", "/api/v1/challenges/:id/participants/:userId/approve"},
		{"POST", "/api/v1/challenges/:id/participants/:userId/reject"},
		{"POST", "/api/v1/challenges/:id/register"},
		{"POST", "/api/v1/challenges/:id/invitations"},
		{"PATCH", "/api/v1/challenges/invitations/:id/respond"},
		{"GET", "/api/v1/invitations"},
		{"GET", "/api/v1/challenges/:id/leaderboard"},
		{"GET", "/api/v1/challenges/:id/ws"},
	}

	registered := r.Routes()
	for _, w := range want {
		found := false
		for _, route := range registered {
			if route.Method == w.method && route.Path == w.path {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("route %s %s is not registered", w.method, w.path)
		}
	}
}
