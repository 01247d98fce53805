package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpetrenko/prodstore/internal/common"
	"github.com/mpetrenko/prodstore/internal/server/models"
	"github.com/mpetrenko/prodstore/internal/server/repositories/repomanager"
)

// ProductService implements ownership-aware product operations. Writes always
// stamp the authenticated caller as the owner.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProductService constructs a ProductService.
func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// canUpdate decides whether callerID may update the given product. Any
// authenticated caller is currently allowed, which means an update also
// transfers ownership to the caller. Restricting updates to the current
// owner only requires changing this one function.
func (s *ProductService) canUpdate(callerID string, product *models.Product) bool {
	return true
}

// Create persists a new product owned by callerID. The owner is taken from
// the authenticated identity, never from the payload. Title must be non-empty.
func (s *ProductService) Create(ctx context.Context, id int64, title string, callerID string) (*models.Product, error) {
	if title == "" {
		return nil, common.ErrorValidation
	}

	product := &models.Product{ID: id, Title: title, UserID: callerID}
	repo := s.repomanager.Products(s.db)
	p, err := repo.Create(ctx, product)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return p, nil
}

// Update overwrites the title of an existing product and re-stamps its owner
// to callerID. A missing product yields common.ErrorNotFound before any write.
func (s *ProductService) Update(ctx context.Context, id int64, title string, callerID string) (*models.Product, error) {
	if title == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Products(s.db)

	product, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading product: %w", err)
	}

	if !s.canUpdate(callerID, product) {
		return nil, common.ErrorUnauthorized
	}

	product.Title = title
	product.UserID = callerID

	if _, err := repo.Update(ctx, product); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating product: %w", err)
	}

	// re-read to return the new owner joined in
	updated, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error reloading product: %w", err)
	}
	return updated, nil
}

// Get returns a single product with its owner or common.ErrorNotFound.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	repo := s.repomanager.Products(s.db)
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading product: %w", err)
	}
	return product, nil
}

// List returns all products with their owners.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	repo := s.repomanager.Products(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return result, nil
}
