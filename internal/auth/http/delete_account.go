package http

import (
	"errors"
	"net/http"

	"github.com/gatehouse-auth/gatehouse/internal/auth/service"
	"github.com/gatehouse-auth/gatehouse/pkg/httpx"
	"github.com/gatehouse-auth/gatehouse/pkg/slogx"
)

// DeleteAccountHandler serves DELETE /api/user. The authenticated user
// deletes their own account; every refresh token they hold dies with it.
type DeleteAccountHandler struct {
	UserService *service.UserService
}

func (h *DeleteAccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteMessage(w, http.StatusForbidden, "Invalid or expired token")
		return
	}

	if err := h.UserService.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("account deletion failed", "user_id", userID, "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "User account deleted successfully")
}
