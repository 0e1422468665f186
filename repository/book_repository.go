package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"biblionet/models"
)

const bookColumns = `id, title, author, isbn, publication_date, genre`

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new book and returns it with its generated ID.
// A duplicate ISBN surfaces as a ConstraintError.
func (r *BookRepository) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	if b == nil {
		return nil, errors.New("book is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO books (title, author, isbn, publication_date, genre) VALUES (?,?,?,?,?)`,
		b.Title, b.Author, b.ISBN, b.PublicationDate, b.Genre)
	if err != nil {
		if uniqueViolation(err) {
			return nil, &ConstraintError{Entity: "books", Field: "isbn", Err: err}
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	b.ID = id
	return b, nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanBookRow(r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
}

func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanBookRow(r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE isbn = ?`, isbn))
}

// SearchByTitle returns books whose title contains the fragment, case-insensitively.
func (r *BookRepository) SearchByTitle(ctx context.Context, fragment string) ([]models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books WHERE instr(lower(title), lower(?)) > 0 ORDER BY id`, fragment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookRows(rows)
}

func (r *BookRepository) ListAll(ctx context.Context) ([]models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookRows(rows)
}

// ListAvailable returns books with no outstanding loan: all books minus those
// referenced by a loan whose return_date is still null.
func (r *BookRepository) ListAvailable(ctx context.Context) ([]models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT `+bookColumns+`
FROM books
WHERE id NOT IN (SELECT book_id FROM loans WHERE return_date IS NULL)
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookRows(rows)
}

func scanBookRow(row *sql.Row) (*models.Book, error) {
	var b models.Book
	var isbn, pubDate sql.NullString
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &isbn, &pubDate, &b.Genre); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if isbn.Valid {
		v := isbn.String
		b.ISBN = &v
	}
	if pubDate.Valid {
		v := pubDate.String
		b.PublicationDate = &v
	}
	return &b, nil
}

func scanBookRows(rows *sql.Rows) ([]models.Book, error) {
	var out []models.Book
	for rows.Next() {
		var b models.Book
		var isbn, pubDate sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &isbn, &pubDate, &b.Genre); err != nil {
			return nil, err
		}
		if isbn.Valid {
			v := isbn.String
			b.ISBN = &v
		}
		if pubDate.Valid {
			v := pubDate.String
			b.PublicationDate = &v
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
