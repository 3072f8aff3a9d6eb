package handlers

import (
	"fmt"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/gorilla/mux"
)

type CategoryHandler struct {
	repo   repositories.CategoryRepositoryImpl
	render *renderer.Renderer
}

func NewCategoryHandler(c repositories.CategoryRepositoryImpl, r *renderer.Renderer) *CategoryHandler {
	return &CategoryHandler{repo: c, render: r}
}

func (h *CategoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.render.Error(w, fmt.Errorf("failed to list categories: %w", err))
		return
	}

	resp := make([]other.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, other.NewCategoryResponse(category))
	}
	h.render.JSON(w, http.StatusOK, resp)
}

func (h *CategoryHandler) CategoryDetail(w http.ResponseWriter, r *http.Request) {
	category, err := h.repo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.render.Error(w, fmt.Errorf("failed to get category: %w", err))
		return
	}
	if category == nil {
		h.render.Error(w, apperror.NotFound("Category not found"))
		return
	}
	h.render.JSON(w, http.StatusOK, other.NewCategoryResponse(*category))
}
