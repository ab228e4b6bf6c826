package api

import (
	"errors"
	"net/http"

	"github.com/blattwerk/blattwerk-api/internal/api/middleware"
	"github.com/blattwerk/blattwerk-api/internal/api/shared"
	"github.com/blattwerk/blattwerk-api/internal/store"
)

// UserHandler handles requests about the authenticated user
type UserHandler struct {
	userStore store.UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userStore store.UserStore) *UserHandler {
	return &UserHandler{userStore: userStore}
}

// Me returns the authenticated user's profile (GET /me)
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The token outlived the account.
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to retrieve user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Credits:   user.Credits,
		Plan:      user.Plan,
		CreatedAt: user.CreatedAt,
	})
}
