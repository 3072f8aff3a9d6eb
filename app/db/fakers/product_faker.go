package fakers

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

var (
	categoryNames = []string{"Shirts", "Shoes", "Jackets", "Accessories"}

	brands = []string{"Northwind", "Acme", "Lumen", "Harbor"}

	imagePaths = []string{
		"/uploads/products/ss.jpg",
		"/uploads/products/ss1.jpg",
		"/uploads/products/ss2.jpg",
	}
)

func CategoryFakers() []*models.Category {
	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		categories = append(categories, &models.Category{
			Name:        name,
			Description: faker.Sentence(),
		})
	}
	return categories
}

func ProductFaker(category *models.Category) *models.Product {
	name := capitalize(faker.Word()) + " " + strings.TrimSuffix(category.Name, "s")

	numImages := rand.Intn(3) + 1
	productImages := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		productImages[i] = models.ProductImage{
			ImageURL: imagePaths[rand.Intn(len(imagePaths))],
			AltText:  name,
		}
	}

	return &models.Product{
		Name:          name,
		Description:   faker.Paragraph(),
		Price:         decimal.NewFromFloat(fakePrice()).Round(2),
		Stock:         rand.Intn(20) + 1,
		Brand:         brands[rand.Intn(len(brands))],
		CategoryID:    category.ID,
		ProductImages: productImages,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fakePrice returns a price between 1 and 500 with at most two decimals.
func fakePrice() float64 {
	return precision(1+rand.Float64()*499, 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
