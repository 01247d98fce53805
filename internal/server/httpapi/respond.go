package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrenko/prodstore/internal/common"
	"github.com/mpetrenko/prodstore/internal/server/models"
)

// userResponse is the externally visible projection of a user. The stored
// password hash is never serialized.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type productResponse struct {
	ID     int64         `json:"id"`
	Title  string        `json:"title"`
	UserID string        `json:"user_id"`
	Owner  *userResponse `json:"owner,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

func toProductResponse(p *models.Product) productResponse {
	resp := productResponse{ID: p.ID, Title: p.Title, UserID: p.UserID}
	if p.Owner != nil {
		owner := toUserResponse(p.Owner)
		resp.Owner = &owner
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
}

// writeServiceError maps sentinel errors from the service layer onto HTTP
// status codes. Unknown errors become a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeErrorMessage(w, http.StatusBadRequest, "validation error")
	case errors.Is(err, common.ErrorUnauthorized):
		writeUnauthorized(w)
	case errors.Is(err, common.ErrorNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeErrorMessage(w, http.StatusConflict, "already exists")
	default:
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
