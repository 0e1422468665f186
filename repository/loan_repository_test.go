package repository

import (
	"context"
	"database/sql"
	"testing"

	"biblionet/internal/db"
	"biblionet/models"
)

// seedLibrary inserts two books and two users shared by the loan tests.
func seedLibrary(t *testing.T, d *sql.DB) (b1, b2 *models.Book, u1, u2 *models.User) {
	t.Helper()
	books := NewBookRepository(d)
	users := NewUserRepository(d)
	ctx := context.Background()

	isbn1, isbn2 := "0001", "0002"
	var err error
	b1, err = books.Create(ctx, &models.Book{Title: "Dune", Author: "Herbert", ISBN: &isbn1, Genre: "Science Fiction"})
	if err != nil {
		t.Fatalf("seed book: %v", err)
	}
	b2, err = books.Create(ctx, &models.Book{Title: "Hamlet", Author: "Shakespeare", ISBN: &isbn2, Genre: "Drama"})
	if err != nil {
		t.Fatalf("seed book: %v", err)
	}
	u1, err = users.Create(ctx, &models.User{Name: "Ana", AccountNumber: "A1"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	u2, err = users.Create(ctx, &models.User{Name: "Bruno", AccountNumber: "A2"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return b1, b2, u1, u2
}

func TestLoanRepository_CreateAndGet(t *testing.T) {
	d, err := db.Open("file:loanrepo_create?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	b1, _, u1, _ := seedLibrary(t, d)
	repo := NewLoanRepository(d)
	ctx := context.Background()

	l, err := repo.Create(ctx, &models.Loan{BookID: b1.ID, UserID: u1.ID, LoanDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.ID == 0 || l.ReturnDate != nil {
		t.Fatalf("unexpected created loan: %+v", l)
	}

	g, err := repo.GetByID(ctx, l.ID)
	if err != nil || g == nil {
		t.Fatalf("get by id: %v %+v", err, g)
	}
	if g.BookID != b1.ID || g.UserID != u1.ID || g.LoanDate != "2024-01-01" || g.ReturnDate != nil {
		t.Fatalf("stored loan differs from input: %+v", g)
	}

	gone, err := repo.GetByID(ctx, 9999)
	if err != nil || gone != nil {
		t.Fatalf("expected absent loan, got: %+v err=%v", gone, err)
	}
}

func TestLoanRepository_SetReturnDate(t *testing.T) {
	d, err := db.Open("file:loanrepo_return?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	b1, _, u1, _ := seedLibrary(t, d)
	repo := NewLoanRepository(d)
	ctx := context.Background()

	l, err := repo.Create(ctx, &models.Loan{BookID: b1.ID, UserID: u1.ID, LoanDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.SetReturnDate(ctx, l.ID, "2024-01-15")
	if err != nil || updated == nil {
		t.Fatalf("set return date: %v %+v", err, updated)
	}
	if updated.ReturnDate == nil || *updated.ReturnDate != "2024-01-15" {
		t.Fatalf("return date not stamped: %+v", updated)
	}

	// Stamping again overwrites the date rather than failing.
	updated, err = repo.SetReturnDate(ctx, l.ID, "2024-02-01")
	if err != nil || updated == nil || updated.ReturnDate == nil || *updated.ReturnDate != "2024-02-01" {
		t.Fatalf("re-stamp: %v %+v", err, updated)
	}

	missing, err := repo.SetReturnDate(ctx, 9999, "2024-02-01")
	if err != nil || missing != nil {
		t.Fatalf("expected no loan updated, got: %+v err=%v", missing, err)
	}
}

func TestLoanRepository_ListFilters(t *testing.T) {
	d, err := db.Open("file:loanrepo_filters?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	b1, b2, u1, u2 := seedLibrary(t, d)
	repo := NewLoanRepository(d)
	ctx := context.Background()

	l1, err := repo.Create(ctx, &models.Loan{BookID: b1.ID, UserID: u1.ID, LoanDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	l2, err := repo.Create(ctx, &models.Loan{BookID: b2.ID, UserID: u1.ID, LoanDate: "2024-03-10"})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	l3, err := repo.Create(ctx, &models.Loan{BookID: b2.ID, UserID: u2.ID, LoanDate: "2024-06-20"})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	if _, err := repo.SetReturnDate(ctx, l2.ID, "2024-03-20"); err != nil {
		t.Fatalf("return loan: %v", err)
	}

	all, err := repo.List(ctx, ListLoansParams{})
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v len=%d", err, len(all))
	}

	pending, err := repo.List(ctx, ListLoansParams{OnlyPending: true})
	if err != nil || len(pending) != 2 {
		t.Fatalf("list pending: %v len=%d", err, len(pending))
	}
	for _, l := range pending {
		if l.ReturnDate != nil {
			t.Fatalf("pending list contains returned loan: %+v", l)
		}
	}

	byAccount, err := repo.List(ctx, ListLoansParams{AccountNumber: "A1"})
	if err != nil || len(byAccount) != 2 {
		t.Fatalf("list by account: %v len=%d", err, len(byAccount))
	}

	from, to := "2024-02-01", "2024-12-31"
	ranged, err := repo.List(ctx, ListLoansParams{LoanedFrom: &from, LoanedTo: &to})
	if err != nil || len(ranged) != 2 {
		t.Fatalf("list by date range: %v len=%d", err, len(ranged))
	}
	if ranged[0].ID != l2.ID || ranged[1].ID != l3.ID {
		t.Fatalf("unexpected ranged loans: %+v", ranged)
	}

	combined, err := repo.List(ctx, ListLoansParams{AccountNumber: "A1", OnlyPending: true})
	if err != nil || len(combined) != 1 || combined[0].ID != l1.ID {
		t.Fatalf("combined filters: %v %+v", err, combined)
	}
}

func TestLoanRepository_ListsByBookAndUser(t *testing.T) {
	d, err := db.Open("file:loanrepo_bybook?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	b1, b2, u1, u2 := seedLibrary(t, d)
	repo := NewLoanRepository(d)
	ctx := context.Background()

	l1, err := repo.Create(ctx, &models.Loan{BookID: b1.ID, UserID: u1.ID, LoanDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	if _, err := repo.SetReturnDate(ctx, l1.ID, "2024-01-10"); err != nil {
		t.Fatalf("return loan: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Loan{BookID: b1.ID, UserID: u2.ID, LoanDate: "2024-02-01"}); err != nil {
		t.Fatalf("create loan: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Loan{BookID: b2.ID, UserID: u1.ID, LoanDate: "2024-02-05"}); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	// By book includes both active and returned loans.
	byBook, err := repo.ListByBookID(ctx, b1.ID)
	if err != nil || len(byBook) != 2 {
		t.Fatalf("list by book: %v len=%d", err, len(byBook))
	}

	byUser, err := repo.ListByUserID(ctx, u1.ID)
	if err != nil || len(byUser) != 2 {
		t.Fatalf("list by user: %v len=%d", err, len(byUser))
	}

	// Active-by-account excludes the returned loan.
	active, err := repo.ListActiveByAccount(ctx, "A1")
	if err != nil || len(active) != 1 || active[0].BookID != b2.ID {
		t.Fatalf("active by account: %v %+v", err, active)
	}

	active, err = repo.ListActiveByAccount(ctx, "Z9")
	if err != nil || len(active) != 0 {
		t.Fatalf("active for unknown account: %v len=%d", err, len(active))
	}
}

func TestLoanRepository_ExistsActiveByBookID(t *testing.T) {
	d, err := db.Open("file:loanrepo_exists?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	b1, _, u1, _ := seedLibrary(t, d)
	repo := NewLoanRepository(d)
	ctx := context.Background()

	active, err := repo.ExistsActiveByBookID(ctx, b1.ID)
	if err != nil || active {
		t.Fatalf("expected no active loan: %v active=%v", err, active)
	}

	l, err := repo.Create(ctx, &models.Loan{BookID: b1.ID, UserID: u1.ID, LoanDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	active, err = repo.ExistsActiveByBookID(ctx, b1.ID)
	if err != nil || !active {
		t.Fatalf("expected active loan: %v active=%v", err, active)
	}

	if _, err := repo.SetReturnDate(ctx, l.ID, "2024-01-15"); err != nil {
		t.Fatalf("return loan: %v", err)
	}
	active, err = repo.ExistsActiveByBookID(ctx, b1.ID)
	if err != nil || active {
		t.Fatalf("expected no active loan after return: %v active=%v", err, active)
	}

	// An id that no loan references has no outstanding loans either.
	active, err = repo.ExistsActiveByBookID(ctx, 9999)
	if err != nil || active {
		t.Fatalf("unknown book id should report no active loan: %v active=%v", err, active)
	}
}
