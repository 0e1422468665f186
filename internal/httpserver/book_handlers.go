package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"biblionet/models"
	"biblionet/repository"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.ListAll(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(books))
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var b models.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "invalid json body")
		return
	}
	b.ID = 0 // identity is store-generated
	created, err := s.books.Create(r.Context(), &b)
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

func (s *Server) handleGetBookByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := s.books.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if b == nil {
		writeNotFound(w, r, "Book", "id "+r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleGetBookByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	b, err := s.books.GetByISBN(r.Context(), isbn)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if b == nil {
		writeNotFound(w, r, "Book", "ISBN "+isbn)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSearchBooksByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "title query parameter is required")
		return
	}
	books, err := s.books.SearchByTitle(r.Context(), title)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(books))
}

func (s *Server) handleListAvailableBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.ListAvailable(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(books))
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// handleBookAvailability reports whether the book has zero outstanding loans.
// An id with no loans at all reports available, even if no such book exists.
func (s *Server) handleBookAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	active, err := s.loans.ExistsActiveByBookID(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{Available: !active})
}

// pathID parses a numeric path segment, responding 400 on garbage input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "invalid "+name+" path parameter")
		return 0, false
	}
	return id, true
}
