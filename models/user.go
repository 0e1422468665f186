package models

// User represents a registered account holder.
// It maps to the `users` table in SQLite.
type User struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	AccountNumber string `db:"account_number" json:"account_number"`
}
