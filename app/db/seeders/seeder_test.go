package seeders

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-api/app/db/testdb"
	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSeedIsRepeatableForCategories(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	require.NoError(t, DBSeed(ctx, db, 2))
	require.NoError(t, DBSeed(ctx, db, 1))

	var categories, products, images int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&images).Error)

	assert.EqualValues(t, 4, categories)
	assert.EqualValues(t, 12, products)
	assert.GreaterOrEqual(t, images, products)

	var orphans int64
	require.NoError(t, db.Model(&models.Product{}).
		Where("category_id NOT IN (?)", db.Model(&models.Category{}).Select("id")).
		Count(&orphans).Error)
	assert.Zero(t, orphans)
}
