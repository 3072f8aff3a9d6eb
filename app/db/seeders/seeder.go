package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-ecommerce-api/app/db/fakers"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"gorm.io/gorm"
)

// DBSeed makes sure the fixed categories exist and adds productsPerCategory
// fake products to each of them.
func DBSeed(ctx context.Context, db *gorm.DB, productsPerCategory int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryRepo := repositories.NewCategoryRepository(tx)
		productRepo := repositories.NewProductRepository(tx)

		for _, category := range fakers.CategoryFakers() {
			existing, err := categoryRepo.GetByName(ctx, category.Name)
			if err != nil {
				return fmt.Errorf("failed to look up category %s: %w", category.Name, err)
			}
			if existing != nil {
				category = existing
			} else if err := categoryRepo.Create(ctx, category); err != nil {
				return fmt.Errorf("failed to seed category %s: %w", category.Name, err)
			}

			for i := 0; i < productsPerCategory; i++ {
				product := fakers.ProductFaker(category)
				if err := productRepo.Create(ctx, product); err != nil {
					return fmt.Errorf("failed to seed product %s: %w", product.Name, err)
				}
			}
			log.Printf("DBSeed: seeded %d products in %s", productsPerCategory, category.Name)
		}
		return nil
	})
}
