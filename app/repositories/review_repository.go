package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, db *gorm.DB, review *models.Review) error
	FindByUserAndProduct(ctx context.Context, db *gorm.DB, userID, productID string) (*models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// conn returns db, or the repository's own handle when no transaction is given.
func (r *reviewRepository) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *reviewRepository) Create(ctx context.Context, db *gorm.DB, review *models.Review) error {
	return r.conn(db).WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByUserAndProduct(ctx context.Context, db *gorm.DB, userID, productID string) (*models.Review, error) {
	var review models.Review
	err := r.conn(db).WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}
