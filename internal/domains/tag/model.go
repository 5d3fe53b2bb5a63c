package tag

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// Tag mirrors one row of the tags table.
type Tag struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update.
type Request struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 50),
		),
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
			validation.Length(1, 50),
			validation.Match(slugPattern).Error("slug must be lowercase letters, digits and hyphens"),
		),
	)
}

func (r *Request) ToEntity() *Tag {
	t := &Tag{
		Name: r.Name,
		Slug: r.Slug,
	}
	if r.ID != nil {
		t.ID = *r.ID
	}
	return t
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (t *Tag) Apply(p *Patch) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Slug != nil {
		t.Slug = *p.Slug
	}
}

type Criteria struct {
	ID        criteria.LongFilter   `param:"id" db:"id"`
	Name      criteria.StringFilter `param:"name" db:"name"`
	Slug      criteria.StringFilter `param:"slug" db:"slug"`
	CreatedAt criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"slug":       "slug",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
