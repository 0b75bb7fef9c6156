package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobportal/pkg/models"
	"github.com/garnizeh/jobportal/pkg/repository"
)

// UsersHandler serves the identity endpoints: lookup, explicit registration
// and the unified upsert-or-login write.
type UsersHandler struct {
	userRepo repository.UserRepo
}

func NewUsersHandler(ur repository.UserRepo) *UsersHandler {
	return &UsersHandler{userRepo: ur}
}

func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	u, err := h.userRepo.GetByEmail(r.Context(), email)
	if err != nil {
		writeRepoError(w, err, "user not found")
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeSuccess(w, http.StatusOK, "user found", u)
}

func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if u.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.userRepo.CreateUser(r.Context(), &u); err != nil {
		writeRepoError(w, err, "user not found")
		return
	}

	writeSuccess(w, http.StatusCreated, "user created", u)
}

type upsertUserResponse struct {
	Outcome models.UpsertOutcome `json:"outcome"`
	User    models.User          `json:"user"`
}

// UpsertUser unifies registration, profile edit and session confirmation into
// one write. The caller learns which of the three happened only through the
// outcome in the response.
func (h *UsersHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if u.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	outcome, err := h.userRepo.UpsertUser(r.Context(), &u)
	if err != nil {
		writeRepoError(w, err, "user not found")
		return
	}

	status := http.StatusOK
	message := "user updated"
	switch outcome {
	case models.OutcomeCreated:
		status = http.StatusCreated
		message = "user created"
	case models.OutcomeLoginNoop:
		message = "logged in"
	}

	writeSuccess(w, status, message, upsertUserResponse{Outcome: outcome, User: u})
}
