// Package httpapi exposes the service over HTTP/JSON: routing, request
// handlers, and the bearer-token middleware guarding product routes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mpetrenko/prodstore/internal/logging"
	"github.com/mpetrenko/prodstore/internal/server/services"
)

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	products  *services.ProductService
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ps *services.ProductService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		products:  ps,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router builds the route table. Sign-up and sign-in are public; everything
// under /products goes through the access token middleware.
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/user/sign-up", s.signUp).Methods(http.MethodPost)
	r.HandleFunc("/user/sign-in", s.signIn).Methods(http.MethodPost)

	pr := r.PathPrefix("/products").Subrouter()
	pr.Use(s.accessTokenMiddleware)
	pr.HandleFunc("", s.createProduct).Methods(http.MethodPost)
	pr.HandleFunc("", s.listProducts).Methods(http.MethodGet)
	pr.HandleFunc("/{id:[0-9]+}", s.getProduct).Methods(http.MethodGet)
	pr.HandleFunc("/{id:[0-9]+}", s.updateProduct).Methods(http.MethodPut)

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
