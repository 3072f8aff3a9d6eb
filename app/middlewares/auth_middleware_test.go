package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-api/app/db/testdb"
	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapTokens map[string]string

func (m mapTokens) Parse(token string) (string, error) {
	if userID, ok := m[token]; ok {
		return userID, nil
	}
	return "", errors.New("unknown token")
}

type fixedSession string

func (s fixedSession) GetUserID(*http.Request) string                             { return string(s) }
func (s fixedSession) SetUserID(http.ResponseWriter, *http.Request, string) error { return nil }
func (s fixedSession) ClearSession(http.ResponseWriter, *http.Request) error      { return nil }

func whoAmI(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(user.Email))
}

func TestAuthenticate(t *testing.T) {
	db := testdb.Open(t)
	userRepo := repositories.NewUserRepository(db)
	rnd := renderer.New(false)

	user := &models.User{Email: "u@example.com", Password: "secret123"}
	require.NoError(t, userRepo.Create(context.Background(), user))

	tokens := mapTokens{"good": user.ID, "orphan": "deleted-user"}

	tests := []struct {
		name    string
		header  string
		session string
		status  int
		body    string
	}{
		{name: "anonymous", status: http.StatusOK, body: "anonymous"},
		{name: "bearer", header: "Bearer good", status: http.StatusOK, body: "u@example.com"},
		{name: "lowercase scheme", header: "bearer good", status: http.StatusOK, body: "u@example.com"},
		{name: "session cookie", session: user.ID, status: http.StatusOK, body: "u@example.com"},
		{name: "bad bearer", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "bearer for missing user", header: "Bearer orphan", status: http.StatusUnauthorized},
		{name: "session for missing user", session: "deleted-user", status: http.StatusOK, body: "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticate(tokens, fixedSession(tt.session), userRepo, rnd)(http.HandlerFunc(whoAmI))

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRequireUserAndRole(t *testing.T) {
	rnd := renderer.New(false)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	customer := &models.User{ID: "c1", Role: models.RoleCustomer}
	admin := &models.User{ID: "a1", Role: models.RoleAdmin}

	tests := []struct {
		name    string
		handler http.Handler
		user    *models.User
		status  int
	}{
		{name: "user guard anonymous 401", handler: RequireUser(rnd, apperror.KindUnauthorized)(ok), status: http.StatusUnauthorized},
		{name: "user guard anonymous 403", handler: RequireUser(rnd, apperror.KindForbidden)(ok), status: http.StatusForbidden},
		{name: "user guard customer", handler: RequireUser(rnd, apperror.KindUnauthorized)(ok), user: customer, status: http.StatusNoContent},
		{name: "role guard anonymous", handler: RequireRole(rnd, models.RoleAdmin)(ok), status: http.StatusForbidden},
		{name: "role guard customer", handler: RequireRole(rnd, models.RoleAdmin)(ok), user: customer, status: http.StatusForbidden},
		{name: "role guard admin", handler: RequireRole(rnd, models.RoleAdmin)(ok), user: admin, status: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(helpers.WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(renderer.New(false))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
