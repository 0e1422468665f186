// Package httpserver exposes the library record keeper as a JSON HTTP API.
// Routes map onto the repository operations one-to-one; the only
// orchestration lives in loan creation (resolve book and user, then insert)
// and loan return (stamp the server-side date).
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"biblionet/repository"
)

// Server bundles the repositories behind the HTTP handlers.
type Server struct {
	books *repository.BookRepository
	users *repository.UserRepository
	loans *repository.LoanRepository
	mux   *http.ServeMux
}

// New constructs the server with routes configured. Dependencies are passed
// explicitly; there is no registry behind this.
func New(books *repository.BookRepository, users *repository.UserRepository, loans *repository.LoanRepository) *Server {
	s := &Server{books: books, users: users, loans: loans, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Router returns the handler wrapped with request-id and request-log middleware.
func (s *Server) Router() http.Handler {
	return withRequestID(withRequestLog(s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	// books
	s.mux.HandleFunc("GET /api/books", s.handleListBooks)
	s.mux.HandleFunc("POST /api/books/create", s.handleCreateBook)
	s.mux.HandleFunc("GET /api/books/id/{id}", s.handleGetBookByID)
	s.mux.HandleFunc("GET /api/books/id/{id}/available", s.handleBookAvailability)
	s.mux.HandleFunc("GET /api/books/isbn/{isbn}", s.handleGetBookByISBN)
	s.mux.HandleFunc("GET /api/books/title/search", s.handleSearchBooksByTitle)
	s.mux.HandleFunc("GET /api/books/available", s.handleListAvailableBooks)

	// users
	s.mux.HandleFunc("GET /api/users", s.handleListUsers)
	s.mux.HandleFunc("POST /api/users/create", s.handleCreateUser)
	s.mux.HandleFunc("GET /api/users/id/{id}", s.handleGetUserByID)
	s.mux.HandleFunc("GET /api/users/account/{account}", s.handleGetUserByAccount)
	s.mux.HandleFunc("GET /api/users/name/search", s.handleSearchUsersByName)

	// loans
	s.mux.HandleFunc("GET /api/loans", s.handleListLoans)
	s.mux.HandleFunc("GET /api/loans/pending", s.handleListPendingLoans)
	s.mux.HandleFunc("GET /api/loans/active", s.handleListActiveLoansByAccount)
	s.mux.HandleFunc("GET /api/loans/by-book/{bookId}", s.handleListLoansByBook)
	s.mux.HandleFunc("GET /api/loans/by-user/{userId}", s.handleListLoansByUser)
	s.mux.HandleFunc("GET /api/loans/{id}", s.handleGetLoanByID)
	s.mux.HandleFunc("POST /api/loans/create", s.handleCreateLoan)
	s.mux.HandleFunc("PUT /api/loans/{id}/return", s.handleReturnLoan)
}

// Start begins serving on addr and returns a shutdown function.
func (s *Server) Start(addr string) (func(context.Context) error, error) {
	if addr == "" {
		addr = ":8080"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() { _ = srv.Serve(lis) }()
	return srv.Shutdown, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
