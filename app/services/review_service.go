package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"gorm.io/gorm"
)

// ReviewInput carries the raw rating as received; it is truncated to an
// integer before it is stored.
type ReviewInput struct {
	ProductID string
	Rating    *float64
	Comment   string
}

type ReviewView struct {
	Review      models.Review
	UserEmail   string
	ProductName string
}

type ReviewService struct {
	db            *gorm.DB
	productRepo   repositories.ProductRepositoryImpl
	orderItemRepo repositories.OrderItemRepository
	reviewRepo    repositories.ReviewRepository
}

func NewReviewService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	orderItemRepo repositories.OrderItemRepository,
	reviewRepo repositories.ReviewRepository,
) *ReviewService {
	return &ReviewService{
		db:            db,
		productRepo:   productRepo,
		orderItemRepo: orderItemRepo,
		reviewRepo:    reviewRepo,
	}
}

// CanReview reports whether userID has received productID in at least one
// delivered order. It always queries db; pass a transaction to read inside it.
func (s *ReviewService) CanReview(ctx context.Context, db *gorm.DB, userID, productID string) (bool, error) {
	return s.orderItemRepo.HasDeliveredItem(ctx, db, userID, productID)
}

func (s *ReviewService) CreateReview(ctx context.Context, user *models.User, input ReviewInput) (*ReviewView, error) {
	if user == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	productID := strings.TrimSpace(input.ProductID)
	if productID == "" || input.Rating == nil || *input.Rating == 0 {
		return nil, apperror.InvalidInput("missing productId or rating")
	}
	rating := int(math.Trunc(*input.Rating))

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if product == nil {
		return nil, apperror.NotFound("Product not found")
	}

	review := &models.Review{
		UserID:    user.ID,
		ProductID: product.ID,
		Rating:    rating,
		CreatedAt: time.Now(),
	}
	if comment := strings.TrimSpace(input.Comment); comment != "" {
		review.Comment = &comment
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eligible, err := s.CanReview(ctx, tx, user.ID, product.ID)
		if err != nil {
			return fmt.Errorf("failed to check review eligibility: %w", err)
		}
		if !eligible {
			return apperror.Forbidden("You can only review ordered products after receiving")
		}

		existing, err := s.reviewRepo.FindByUserAndProduct(ctx, tx, user.ID, product.ID)
		if err != nil {
			return fmt.Errorf("failed to look up existing review: %w", err)
		}
		if existing != nil {
			return apperror.Conflict("You have already reviewed this product")
		}

		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			if repositories.IsDuplicateKey(err) {
				return apperror.Wrap(apperror.KindConflict, "You have already reviewed this product", err)
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("ReviewService.CreateReview: user %s reviewed product %s with rating %d", user.ID, product.ID, rating)

	return &ReviewView{
		Review:      *review,
		UserEmail:   user.Email,
		ProductName: product.Name,
	}, nil
}
