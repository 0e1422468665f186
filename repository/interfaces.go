package repository

import (
	"context"

	"biblionet/models"
)

// BookRepositoryI defines operations on Book entities.
type BookRepositoryI interface {
	Create(ctx context.Context, b *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	SearchByTitle(ctx context.Context, fragment string) ([]models.Book, error)
	ListAll(ctx context.Context) ([]models.Book, error)
	ListAvailable(ctx context.Context) ([]models.Book, error)
}

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByAccountNumber(ctx context.Context, account string) (*models.User, error)
	SearchByName(ctx context.Context, fragment string) ([]models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// LoanRepositoryI defines operations on Loan entities.
type LoanRepositoryI interface {
	Create(ctx context.Context, l *models.Loan) (*models.Loan, error)
	GetByID(ctx context.Context, id int64) (*models.Loan, error)
	SetReturnDate(ctx context.Context, id int64, date string) (*models.Loan, error)
	List(ctx context.Context, p ListLoansParams) ([]models.Loan, error)
	ListByBookID(ctx context.Context, bookID int64) ([]models.Loan, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Loan, error)
	ListActiveByAccount(ctx context.Context, account string) ([]models.Loan, error)
	ExistsActiveByBookID(ctx context.Context, bookID int64) (bool, error)
}
