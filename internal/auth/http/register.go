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

// RegisterHandler serves POST /api/register. Registration never returns
// tokens; a new user logs in afterwards like everyone else.
type RegisterHandler struct {
	UserService *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "Username and password required")
		return
	}

	if _, err := h.UserService.Register(ctx, req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			httpx.WriteMessage(w, http.StatusConflict, "User already exists")
			return
		}
		log.Error("register failed", "username", req.Username, "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	httpx.WriteMessage(w, http.StatusCreated, "User registered successfully")
}
