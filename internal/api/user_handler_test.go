package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/mocks"
)

func TestUserHandler_Me(t *testing.T) {
	t.Run("success returns the profile without credentials", func(t *testing.T) {
		user, err := domain.NewUser("anna@example.com", "password1234")
		require.NoError(t, err)

		userStore := mocks.NewMockUserStore()
		userStore.Users[user.Email] = user

		handler := NewUserHandler(userStore)

		req := authenticatedRequest(t, http.MethodGet, "/api/me", nil, user.ID)
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, "anna@example.com", resp.Email)
		assert.Equal(t, 2, resp.Credits)
		assert.Equal(t, "free", resp.Plan)

		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("missing authentication returns 401", func(t *testing.T) {
		handler := NewUserHandler(mocks.NewMockUserStore())

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("deleted account returns 404", func(t *testing.T) {
		handler := NewUserHandler(mocks.NewMockUserStore())

		req := authenticatedRequest(t, http.MethodGet, "/api/me", nil, uuid.New())
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
