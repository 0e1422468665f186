package testutil

import (
	"context"
	"database/sql"
	"testing"

	"biblionet/internal/db"
	"biblionet/models"
	"biblionet/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The shared cache keeps the database alive across connections under the
// same name, so each test should pass a distinct one.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SeedBook inserts a book and returns the stored record. An empty isbn is
// stored as NULL.
func SeedBook(t *testing.T, repo *repository.BookRepository, title, author, isbn, genre string) *models.Book {
	t.Helper()
	b := &models.Book{Title: title, Author: author, Genre: genre}
	if isbn != "" {
		b.ISBN = &isbn
	}
	created, err := repo.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("seed book %q: %v", title, err)
	}
	return created
}

// SeedUser inserts a user and returns the stored record.
func SeedUser(t *testing.T, repo *repository.UserRepository, name, account string) *models.User {
	t.Helper()
	created, err := repo.Create(context.Background(), &models.User{Name: name, AccountNumber: account})
	if err != nil {
		t.Fatalf("seed user %q: %v", name, err)
	}
	return created
}

// SeedLoan inserts an outstanding loan and returns the stored record.
func SeedLoan(t *testing.T, repo *repository.LoanRepository, bookID, userID int64, loanDate string) *models.Loan {
	t.Helper()
	created, err := repo.Create(context.Background(), &models.Loan{BookID: bookID, UserID: userID, LoanDate: loanDate})
	if err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return created
}
