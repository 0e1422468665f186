package models

// Loan records that a user borrowed a book. It maps to the `loans` table,
// which holds foreign keys to books and users. Dates are YYYY-MM-DD strings.
type Loan struct {
	ID       int64  `db:"id" json:"id"`
	BookID   int64  `db:"book_id" json:"book_id"`
	UserID   int64  `db:"user_id" json:"user_id"`
	LoanDate string `db:"loan_date" json:"loan_date"`
	// ReturnDate is null while the loan is outstanding.
	ReturnDate *string `db:"return_date" json:"return_date"`
}
