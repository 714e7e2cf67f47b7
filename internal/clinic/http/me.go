package http

import (
	"errors"
	"net/http"

	"github.com/medranosoft/citamed/internal/clinic/service"
	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/pkg/httpx"
	"github.com/medranosoft/citamed/pkg/slogx"
)

// MeHandler returns the authenticated user's own account.
type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveMe(w, r, h.UserService)
}

func serveMe(w http.ResponseWriter, r *http.Request, users *service.UserService) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteMsg(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		// A valid token can outlive its account when an admin deletes it.
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteMsg(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		slogx.FromContext(ctx).Warn("failed to load user", "user_id", userID, "err", err)
		httpx.WriteMsg(w, http.StatusInternalServerError, "Error del servidor")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, publicUser(user.Public()))
}
