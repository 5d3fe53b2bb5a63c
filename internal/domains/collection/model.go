package collection

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// Collection mirrors one row of the collections table. BookCount is
// maintained asynchronously from the book_collections join table and is
// never written by request handlers.
type Collection struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	UserID      int64     `json:"user_id" db:"user_id"`
	BookCount   int       `json:"book_count" db:"book_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update. The owner comes from
// the authenticated caller, never from the body.
type Request struct {
	ID          *int64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"is_public"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

func (r *Request) ToEntity() *Collection {
	c := &Collection{
		Name:        r.Name,
		Description: r.Description,
		IsPublic:    r.IsPublic,
	}
	if r.ID != nil {
		c.ID = *r.ID
	}
	return c
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

func (c *Collection) Apply(p *Patch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.IsPublic != nil {
		c.IsPublic = *p.IsPublic
	}
}

type Criteria struct {
	ID        criteria.LongFilter   `param:"id" db:"id"`
	Name      criteria.StringFilter `param:"name" db:"name"`
	IsPublic  criteria.BoolFilter   `param:"is_public" db:"is_public"`
	UserID    criteria.LongFilter   `param:"user_id" db:"user_id"`
	BookCount criteria.IntFilter    `param:"book_count" db:"book_count"`
	CreatedAt criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"is_public":  "is_public",
	"book_count": "book_count",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
