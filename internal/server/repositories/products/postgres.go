// Package products provides a PostgreSQL-backed repository for user-owned
// products. Read queries join the owning user so callers get owner data in
// one round trip.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mpetrenko/prodstore/internal/common"
	"github.com/mpetrenko/prodstore/internal/dbx"
	"github.com/mpetrenko/prodstore/internal/server/models"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// PostgresRepository implements product storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a new product. A duplicate id yields
// common.ErrorAlreadyExists; a missing owner yields common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {

	query :=
		`INSERT INTO products (id, title, user_id)
         VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, product.ID, product.Title, product.UserID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolationCode:
				return nil, common.ErrorAlreadyExists
			case foreignKeyViolationCode:
				return nil, common.ErrorNotFound
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

// GetByID returns the product with its owner attached or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query :=
		`SELECT p.id, p.title, p.user_id, u.id, u.email FROM products p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1
		 `

	product := &models.Product{Owner: &models.User{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Title, &product.UserID, &product.Owner.ID, &product.Owner.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

// Update overwrites title and owner of an existing product. A missing row
// yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products SET title = $2, user_id = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, product.ID, product.Title, product.UserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return product, nil
}

// List returns all products with their owners attached.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query :=
		`SELECT p.id, p.title, p.user_id, u.id, u.email FROM products p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		item := &models.Product{Owner: &models.User{}}
		if err := rows.Scan(&item.ID, &item.Title, &item.UserID, &item.Owner.ID, &item.Owner.Email); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
