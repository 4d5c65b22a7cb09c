package mapper

import (
	"time"

	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentMapper struct{}

func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

func (m *ContentMapper) ToEntity(c *model.Content) *entity.Content {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Content{
		Id:          c.Id,
		Kind:        entity.ContentKind(c.Kind),
		Slug:        c.Slug,
		Title:       c.Title,
		Excerpt:     c.Excerpt,
		Body:        []byte(c.Body),
		Published:   c.Published,
		PublishedAt: c.PublishedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   c.DeletedAt.Valid,
	}
}

func (m *ContentMapper) ToModel(c *entity.Content) *model.Content {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Content{
		Id:          c.Id,
		Kind:        string(c.Kind),
		Slug:        c.Slug,
		Title:       c.Title,
		Excerpt:     c.Excerpt,
		Body:        datatypes.JSON(c.Body),
		Published:   c.Published,
		PublishedAt: c.PublishedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ContentMapper) ToEntities(contents []*model.Content) []*entity.Content {
	entities := make([]*entity.Content, len(contents))
	for i, c := range contents {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
