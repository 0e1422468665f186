package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"biblionet/models"
	"biblionet/repository"
)

// handleListLoans lists every loan, optionally filtered by account number
// and/or an inclusive loan-date range.
func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := repository.ListLoansParams{AccountNumber: q.Get("account")}
	if v := q.Get("from"); v != "" {
		if !validDate(v) {
			writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "from must be a YYYY-MM-DD date")
			return
		}
		p.LoanedFrom = &v
	}
	if v := q.Get("to"); v != "" {
		if !validDate(v) {
			writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "to must be a YYYY-MM-DD date")
			return
		}
		p.LoanedTo = &v
	}
	loans, err := s.loans.List(r.Context(), p)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(loans))
}

func (s *Server) handleListPendingLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.loans.List(r.Context(), repository.ListLoansParams{OnlyPending: true})
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(loans))
}

func (s *Server) handleGetLoanByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	l, err := s.loans.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if l == nil {
		writeNotFound(w, r, "Loan", "id "+r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

type createLoanRequest struct {
	ISBN          string `json:"isbn"`
	AccountNumber string `json:"account_number"`
	LoanDate      string `json:"loan_date"`
}

// handleCreateLoan resolves the book by ISBN and the user by account number,
// then persists a loan with a null return date. Both lookups fail fast:
// nothing is persisted when either reference is missing. The lookups and the
// insert are three independent store calls with no wrapping transaction.
func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "invalid json body")
		return
	}
	if !validDate(req.LoanDate) {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "loan_date must be a YYYY-MM-DD date")
		return
	}

	book, err := s.books.GetByISBN(r.Context(), req.ISBN)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if book == nil {
		writeNotFound(w, r, "Book", "ISBN "+req.ISBN)
		return
	}

	user, err := s.users.GetByAccountNumber(r.Context(), req.AccountNumber)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if user == nil {
		writeNotFound(w, r, "User", "account number "+req.AccountNumber)
		return
	}

	loan := &models.Loan{BookID: book.ID, UserID: user.ID, LoanDate: req.LoanDate}
	created, err := s.loans.Create(r.Context(), loan)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleReturnLoan stamps the return date with the server's current date.
// Returning an already-returned loan stamps it again rather than failing.
func (s *Server) handleReturnLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	today := time.Now().Format(time.DateOnly)
	updated, err := s.loans.SetReturnDate(r.Context(), id, today)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if updated == nil {
		writeNotFound(w, r, "Loan", "id "+r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListActiveLoansByAccount(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")
	if account == "" {
		writeError(w, r, http.StatusBadRequest, codeInvalidRequest, "account query parameter is required")
		return
	}
	loans, err := s.loans.ListActiveByAccount(r.Context(), account)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(loans))
}

func (s *Server) handleListLoansByBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "bookId")
	if !ok {
		return
	}
	loans, err := s.loans.ListByBookID(r.Context(), bookID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(loans))
}

func (s *Server) handleListLoansByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	loans, err := s.loans.ListByUserID(r.Context(), userID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(loans))
}

func validDate(v string) bool {
	_, err := time.Parse(time.DateOnly, v)
	return err == nil
}
