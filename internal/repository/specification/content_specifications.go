package specification

import (
	"portfolio-content-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// Published keeps rows that are visible on the public site.
type Published struct{}

func (s Published) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.PublishedOnly)
}

// ExcludeID skips one row, used for slug uniqueness checks on update.
type ExcludeID struct {
	ID uuid.UUID
}

func (s ExcludeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}

// NewestPublished orders by publication date, unpublished rows last.
type NewestPublished struct{}

func (s NewestPublished) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByPublishedDesc)
}
