package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/mpetrenko/prodstore/internal/common"
	"github.com/mpetrenko/prodstore/internal/dbx"
	"github.com/mpetrenko/prodstore/internal/logging"
	"github.com/mpetrenko/prodstore/internal/server/config"
	"github.com/mpetrenko/prodstore/internal/server/models"
	productsrepo "github.com/mpetrenko/prodstore/internal/server/repositories/products"
	usersrepo "github.com/mpetrenko/prodstore/internal/server/repositories/users"
	"github.com/mpetrenko/prodstore/internal/server/services"
)

const testSecret = "test-secret"

// memUsersRepo is an in-memory users.Repository used to exercise the full
// HTTP stack without a database.
type memUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byEmail: map[string]*models.User{}}
}

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type memProductsRepo struct {
	mu   sync.Mutex
	byID map[int64]*models.Product

	writes int
}

func newMemProductsRepo() *memProductsRepo {
	return &memProductsRepo{byID: map[int64]*models.Product{}}
}

func (r *memProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.byID[p.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.byID[p.ID] = &models.Product{ID: p.ID, Title: p.Title, UserID: p.UserID}
	return p, nil
}

func (r *memProductsRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	cp.Owner = &models.User{ID: p.UserID, Email: p.UserID + "@example.com"}
	return &cp, nil
}

func (r *memProductsRepo) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.byID[p.ID] = &models.Product{ID: p.ID, Title: p.Title, UserID: p.UserID}
	return p, nil
}

func (r *memProductsRepo) List(ctx context.Context) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Product, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		cp.Owner = &models.User{ID: p.UserID, Email: p.UserID + "@example.com"}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memRepoManager struct {
	u *memUsersRepo
	p *memProductsRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }
func (m *memRepoManager) Products(db dbx.DBTX) productsrepo.Repository { return m.p }

type testEnv struct {
	srv      *HTTPServer
	users    *memUsersRepo
	products *memProductsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rm := &memRepoManager{u: newMemUsersRepo(), p: newMemProductsRepo()}
	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		BcryptCost:            4, // minimum cost keeps tests fast
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv, err := NewHTTPServer(":0", logger,
		services.NewUserService(nil, rm, cfg),
		services.NewProductService(nil, rm),
		testSecret)
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}

	return &testEnv{srv: srv, users: rm.u, products: rm.p}
}
