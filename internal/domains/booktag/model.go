package booktag

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// BookTag mirrors one row of the book_tags join table.
type BookTag struct {
	ID        int64     `json:"id" db:"id"`
	BookID    int64     `json:"book_id" db:"book_id"`
	TagID     int64     `json:"tag_id" db:"tag_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update.
type Request struct {
	ID     *int64 `json:"id"`
	BookID int64  `json:"book_id"`
	TagID  int64  `json:"tag_id"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
		validation.Field(&r.TagID, validation.Required.Error("tag_id is required")),
	)
}

func (r *Request) ToEntity() *BookTag {
	e := &BookTag{
		BookID: r.BookID,
		TagID:  r.TagID,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID     *int64 `json:"id"`
	BookID *int64 `json:"book_id"`
	TagID  *int64 `json:"tag_id"`
}

func (e *BookTag) Apply(p *Patch) {
	if p.BookID != nil {
		e.BookID = *p.BookID
	}
	if p.TagID != nil {
		e.TagID = *p.TagID
	}
}

type Criteria struct {
	ID        criteria.LongFilter `param:"id" db:"id"`
	BookID    criteria.LongFilter `param:"book_id" db:"book_id"`
	TagID     criteria.LongFilter `param:"tag_id" db:"tag_id"`
	CreatedAt criteria.TimeFilter `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"book_id":    "book_id",
	"tag_id":     "tag_id",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
