package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Specification narrows, orders or pages a query. Repositories apply them in
// argument order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// PageOf converts a 1-based page number into a Pagination.
func PageOf(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{Limit: limit, Offset: (page - 1) * limit}
}
