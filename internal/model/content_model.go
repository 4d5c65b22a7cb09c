package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Content struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind        string         `gorm:"type:varchar(16);not null;uniqueIndex:idx_contents_kind_slug,where:deleted_at IS NULL"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_contents_kind_slug,where:deleted_at IS NULL"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Excerpt     string         `gorm:"type:text"`
	Body        datatypes.JSON `gorm:"type:jsonb;not null"`
	Published   bool           `gorm:"not null;default:false;index"`
	PublishedAt *time.Time     `gorm:"index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Content) TableName() string {
	return "contents"
}
