package httpapi

import (
	"encoding/json"
	"net/http"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (s *HTTPServer) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Error(r.Context(), "sign-up failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", user.Email)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *HTTPServer) signIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{
		User:  toUserResponse(result.User),
		Token: result.AccessToken,
	})
}
