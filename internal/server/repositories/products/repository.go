package products

import (
	"context"

	"github.com/mpetrenko/prodstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
}
