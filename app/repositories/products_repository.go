package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDForShare(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error)
	GetNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("ProductImages").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("ProductImages").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDForShare reads the product inside tx holding a shared row lock, so a
// concurrent price edit cannot commit between the read and the caller's
// commit.
func (p *productRepository) GetByIDForShare(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var products []models.Product
	if err := p.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load product names: %w", err)
	}
	for _, product := range products {
		names[product.ID] = product.Name
	}
	return names, nil
}
