package handlers

import (
	"fmt"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/gorilla/mux"
)

type ProductHandler struct {
	repo         repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	render       *renderer.Renderer
}

func NewProductHandler(p repositories.ProductRepositoryImpl, c repositories.CategoryRepositoryImpl, r *renderer.Renderer) *ProductHandler {
	return &ProductHandler{p, c, r}
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.repo.GetProducts(ctx)
	if err != nil {
		h.render.Error(w, fmt.Errorf("failed to list products: %w", err))
		return
	}
	categories, err := h.categoryRepo.GetAll(ctx)
	if err != nil {
		h.render.Error(w, fmt.Errorf("failed to list categories: %w", err))
		return
	}

	byID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	imageURL := func(path string) string { return helpers.AbsoluteURL(r, path) }
	resp := other.ProductListResponse{Data: make([]other.ProductResponse, 0, len(products))}
	for _, product := range products {
		resp.Data = append(resp.Data, other.NewProductResponse(product, byID[product.CategoryID], imageURL))
	}

	h.render.JSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, err := h.repo.GetByID(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.render.Error(w, fmt.Errorf("failed to get product: %w", err))
		return
	}
	if product == nil {
		h.render.Error(w, apperror.NotFound("Product not found"))
		return
	}

	category, err := h.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		h.render.Error(w, fmt.Errorf("failed to get category: %w", err))
		return
	}

	h.render.JSON(w, http.StatusOK, other.NewProductResponse(*product, category, func(path string) string {
		return helpers.AbsoluteURL(r, path)
	}))
}
