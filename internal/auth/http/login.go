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

// LoginHandler serves POST /api/login. Unknown usernames and wrong passwords
// get the same 401 body so the endpoint can't be used to enumerate accounts.
type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.UserService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("login failed", "username", req.Username, "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	pair, err := h.TokenService.IssuePair(ctx, u.ID)
	if err != nil {
		log.Error("token issuance failed", "user_id", u.ID, "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
