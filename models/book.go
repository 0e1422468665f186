package models

// Book represents a catalogued book.
// It maps to the `books` table in SQLite.
type Book struct {
	ID     int64  `db:"id" json:"id"`
	Title  string `db:"title" json:"title"`
	Author string `db:"author" json:"author"`
	// ISBN is unique across all books when set. Nullable in DB; use a
	// pointer to distinguish null vs empty.
	ISBN            *string `db:"isbn" json:"isbn"`
	PublicationDate *string `db:"publication_date" json:"publication_date"`
	Genre           string  `db:"genre" json:"genre"`
}
