package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpetrenko/prodstore/internal/dbx"
	"github.com/mpetrenko/prodstore/internal/server/repositories/products"
	"github.com/mpetrenko/prodstore/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
}
