package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"biblionet/models"
)

const loanColumns = `id, book_id, user_id, loan_date, return_date`

// LoanRepository is the core repository for Loan entities.
type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create inserts a new loan referencing an existing book and user.
// The caller is responsible for resolving both references beforehand;
// the schema's foreign keys are the only backstop here.
func (r *LoanRepository) Create(ctx context.Context, l *models.Loan) (*models.Loan, error) {
	if l == nil {
		return nil, errors.New("loan is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO loans (book_id, user_id, loan_date, return_date) VALUES (?,?,?,?)`,
		l.BookID, l.UserID, l.LoanDate, l.ReturnDate)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	l.ID = id
	return l, nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*models.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanLoanRow(r.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = ?`, id))
}

// SetReturnDate stamps the return date on a loan and returns the updated
// record, or (nil, nil) when no such loan exists. Stamping an already
// returned loan overwrites its return date.
func (r *LoanRepository) SetReturnDate(ctx context.Context, id int64, date string) (*models.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE loans SET return_date = ? WHERE id = ?`, date, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// ListByBookID returns every loan (active and returned) referencing the book.
func (r *LoanRepository) ListByBookID(ctx context.Context, bookID int64) ([]models.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE book_id = ? ORDER BY id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoanRows(rows)
}

// ListByUserID returns every loan taken by the user with the given id.
func (r *LoanRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoanRows(rows)
}

// ListActiveByAccount returns outstanding loans for the user with the given
// account number.
func (r *LoanRepository) ListActiveByAccount(ctx context.Context, account string) ([]models.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT l.id, l.book_id, l.user_id, l.loan_date, l.return_date
FROM loans l
JOIN users u ON u.id = l.user_id
WHERE u.account_number = ? AND l.return_date IS NULL
ORDER BY l.id`, account)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoanRows(rows)
}

// ExistsActiveByBookID reports whether the book has at least one outstanding
// loan. An unknown book id simply has no outstanding loans.
func (r *LoanRepository) ExistsActiveByBookID(ctx context.Context, bookID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM loans WHERE book_id = ? AND return_date IS NULL)`, bookID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func scanLoanRow(row *sql.Row) (*models.Loan, error) {
	var l models.Loan
	var returned sql.NullString
	if err := row.Scan(&l.ID, &l.BookID, &l.UserID, &l.LoanDate, &returned); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if returned.Valid {
		v := returned.String
		l.ReturnDate = &v
	}
	return &l, nil
}

func scanLoanRows(rows *sql.Rows) ([]models.Loan, error) {
	var out []models.Loan
	for rows.Next() {
		var l models.Loan
		var returned sql.NullString
		if err := rows.Scan(&l.ID, &l.BookID, &l.UserID, &l.LoanDate, &returned); err != nil {
			return nil, err
		}
		if returned.Valid {
			v := returned.String
			l.ReturnDate = &v
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
