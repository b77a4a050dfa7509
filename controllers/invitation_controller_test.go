// File: /controllers/invitation_controller_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"xclub-api/models"
)

// The respond endpoint accepts {"status": "accepted"|"declined"} and nothing
// else. Guards the wire contract against drifting back to verb-shaped bodies.
func TestRespondInvitationRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    models.InvitationStatus
	}{
		{"accepted", `{"status":"accepted"}`, false, models.InvitationStatusAccepted},
		{"declined", `{"status":"declined"}`, false, models.InvitationStatusDeclined},
		{"pending is not a response", `{"status":"pending"}`, true, ""},
		{"verb instead of status", `{"status":"accept"}`, true, ""},
		{"action key ignored", `{"action":"accept"}`, true, ""},
		{"empty body", `{}`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req RespondInvitationRequest
			err := c.ShouldBindJSON(&req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ShouldBindJSON(%s) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
			if !tt.wantErr && req.Status != tt.want {
				t.Errorf("bound status = %q, want %q", req.Status, tt.want)
			}
		})
	}
}
