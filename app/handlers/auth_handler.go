package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/sessions"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	render       *renderer.Renderer
	auth         *services.AuthService
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *renderer.Renderer, auth *services.AuthService, sessionStore sessions.SessionStore, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		auth:         auth,
		sessionStore: sessionStore,
		validator:    validator,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=180"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := helpers.DecodeJSON(r, &req, "Invalid JSON"); err != nil {
		h.render.Error(w, err)
		return
	}
	if err := helpers.Validate(h.validator, &req, "Email and password are required"); err != nil {
		h.render.Error(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.render.Error(w, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, other.MessageResponse{
		Message: fmt.Sprintf("User successfully registered with role %s", user.Role),
	})
}

// Login answers with a bearer token and also starts a cookie session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := helpers.DecodeJSON(r, &req, "Invalid JSON"); err != nil {
		h.render.Error(w, err)
		return
	}
	if err := helpers.Validate(h.validator, &req, "Email and password are required"); err != nil {
		h.render.Error(w, err)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.render.Error(w, err)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.Login: failed to save session for %s: %v", user.ID, err)
	}

	h.render.JSON(w, http.StatusOK, other.TokenResponse{Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: failed to clear session: %v", err)
	}
	h.render.JSON(w, http.StatusOK, other.MessageResponse{Message: "Logged out"})
}
