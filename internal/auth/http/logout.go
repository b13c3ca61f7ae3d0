package http

import (
	"encoding/json"
	"net/http"

	"github.com/gatehouse-auth/gatehouse/internal/auth/service"
	"github.com/gatehouse-auth/gatehouse/pkg/authsdk"
	"github.com/gatehouse-auth/gatehouse/pkg/httpx"
	"github.com/gatehouse-auth/gatehouse/pkg/slogx"
)

// LogoutHandler serves POST /api/logout. Revocation is idempotent: a token
// that was never issued or is already gone still gets a 200, so the endpoint
// can't be used to probe which tokens exist.
type LogoutHandler struct {
	TokenService *service.TokenService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "Refresh token required")
		return
	}

	if err := h.TokenService.Revoke(ctx, req.RefreshToken); err != nil {
		log.Error("logout revocation failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Logged out successfully")
}
