package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"biblionet/models"
)

// ListLoansParams represents optional filters for List.
// The zero value lists every loan.
type ListLoansParams struct {
	AccountNumber string  // loans taken by the user with this account number
	OnlyPending   bool    // restrict to loans with no return date
	LoanedFrom    *string // optional inclusive lower bound on loan_date (YYYY-MM-DD)
	LoanedTo      *string // optional inclusive upper bound on loan_date
}

// List returns loans matching the given filters, ordered by id.
func (r *LoanRepository) List(ctx context.Context, p ListLoansParams) ([]models.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := squirrel.Select("l.id", "l.book_id", "l.user_id", "l.loan_date", "l.return_date").
		From("loans l").
		OrderBy("l.id")
	if p.AccountNumber != "" {
		q = q.Join("users u ON u.id = l.user_id").
			Where(squirrel.Eq{"u.account_number": p.AccountNumber})
	}
	if p.OnlyPending {
		q = q.Where("l.return_date IS NULL")
	}
	if p.LoanedFrom != nil {
		q = q.Where(squirrel.GtOrEq{"l.loan_date": *p.LoanedFrom})
	}
	if p.LoanedTo != nil {
		q = q.Where(squirrel.LtOrEq{"l.loan_date": *p.LoanedTo})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoanRows(rows)
}
