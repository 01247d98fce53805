package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type createProductRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type updateProductRequest struct {
	Title string `json:"title"`
}

func (s *HTTPServer) createProduct(w http.ResponseWriter, r *http.Request) {
	callerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := s.products.Create(r.Context(), req.ID, req.Title, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "product created", "id", product.ID, "owner", callerID)
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (s *HTTPServer) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *HTTPServer) updateProduct(w http.ResponseWriter, r *http.Request) {
	callerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := s.products.Update(r.Context(), id, req.Title, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "product updated", "id", product.ID, "owner", callerID)
	writeJSON(w, http.StatusOK, toProductResponse(product))
}
