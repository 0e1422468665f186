package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"biblionet/models"
	"biblionet/repository"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListAll(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(users))
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "invalid json body")
		return
	}
	u.ID = 0
	created, err := s.users.Create(r.Context(), &u)
	if err != nil {
		if errors.Is(err, repository.ErrConstraint) {
			writeError(w, r, http.StatusConflict, codeConstraint, err.Error())
			return
		}
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if u == nil {
		writeNotFound(w, r, "User", "id "+r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleGetUserByAccount(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	u, err := s.users.GetByAccountNumber(r.Context(), account)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if u == nil {
		writeNotFound(w, r, "User", "account number "+account)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleSearchUsersByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "name query parameter is required")
		return
	}
	users, err := s.users.SearchByName(r.Context(), name)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(users))
}
