package unitofwork

import (
	"context"

	"portfolio-content-be/internal/repository/contract"
)

// UnitOfWork hands out repositories that share one optional transaction.
// Outside Begin/Commit they run on the plain connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ContentRepository() contract.ContentRepository
}

// RepositoryFactory creates one UnitOfWork per request or message.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
