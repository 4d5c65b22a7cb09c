package scope

import "gorm.io/gorm"

func OrderByPublishedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("published_at DESC NULLS LAST").Order("created_at DESC")
}

func PublishedOnly(db *gorm.DB) *gorm.DB {
	return db.Where("published = ?", true)
}
