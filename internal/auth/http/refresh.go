package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatehouse-auth/gatehouse/internal/auth/service"
	"github.com/gatehouse-auth/gatehouse/pkg/authsdk"
	"github.com/gatehouse-auth/gatehouse/pkg/httpx"
	"github.com/gatehouse-auth/gatehouse/pkg/slogx"
)

// RefreshHandler serves POST /api/refresh-token. A missing token is 401; a
// token that is unknown, already consumed, expired, or fails signature
// verification is 403. Success rotates: the presented token is dead and the
// response carries its replacement.
type RefreshHandler struct {
	TokenService *service.TokenService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteMessage(w, http.StatusUnauthorized, "Refresh token required")
		return
	}

	pair, err := h.TokenService.Rotate(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRefresh), errors.Is(err, service.ErrInvalidRefresh):
			httpx.WriteMessage(w, http.StatusForbidden, "Invalid or expired refresh token")
		default:
			log.Error("refresh rotation failed", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to refresh token")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
