package unitofwork

import (
	"context"
	"errors"

	"portfolio-content-be/internal/repository/contract"
	"portfolio-content-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxActive = errors.New("transaction already started")
	ErrNoTx     = errors.New("no active transaction")
)

type gormFactory struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &gormFactory{db: db}
}

func (f *gormFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &gormUnitOfWork{db: f.db}
}

type gormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

func (u *gormUnitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *gormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *gormUnitOfWork) Commit() error {
	return u.finish((*gorm.DB).Commit)
}

// Rollback after Commit returns ErrNoTx, so it is safe to defer.
func (u *gormUnitOfWork) Rollback() error {
	return u.finish((*gorm.DB).Rollback)
}

func (u *gormUnitOfWork) finish(end func(*gorm.DB) *gorm.DB) error {
	if u.tx == nil {
		return ErrNoTx
	}
	tx := u.tx
	u.tx = nil
	return end(tx).Error
}

func (u *gormUnitOfWork) ContentRepository() contract.ContentRepository {
	return implementation.NewContentRepository(u.conn())
}
