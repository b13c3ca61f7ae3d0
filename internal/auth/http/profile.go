package http

import (
	"net/http"

	"github.com/gatehouse-auth/gatehouse/pkg/authsdk"
	"github.com/gatehouse-auth/gatehouse/pkg/httpx"
)

// ProfileHandler serves GET /api/profile. The access guard has already
// verified the bearer token and injected the user id; this handler just
// echoes it back.
type ProfileHandler struct{}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.WriteMessage(w, http.StatusForbidden, "Invalid or expired token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ProfileResponse{
		Message: "Profile data",
		UserID:  userID,
	})
}
