package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-api/app/db/testdb"
	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped gorm duplicated key", err: fmt.Errorf("insert review: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "mysql duplicate entry", err: &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, want: true},
		{name: "mysql other error", err: &mysqldriver.MySQLError{Number: 1452, Message: "foreign key"}, want: false},
		{name: "sqlite unique message", err: errors.New("UNIQUE constraint failed: reviews.user_id, reviews.product_id"), want: true},
		{name: "unrelated", err: gorm.ErrRecordNotFound, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKey(tt.err))
		})
	}
}

func TestReviewUniqueIndexRejectsSecondInsert(t *testing.T) {
	db := testdb.Open(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	userID, productID := uuid.NewString(), uuid.NewString()

	require.NoError(t, repo.Create(ctx, db, &models.Review{UserID: userID, ProductID: productID, Rating: 4}))

	err := repo.Create(ctx, db, &models.Review{UserID: userID, ProductID: productID, Rating: 2})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	require.NoError(t, repo.Create(ctx, db, &models.Review{UserID: userID, ProductID: uuid.NewString(), Rating: 5}))
}
