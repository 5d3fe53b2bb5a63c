package bookauthor

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// BookAuthor mirrors one row of the book_authors join table. Position
// orders the authors on a book's credit line.
type BookAuthor struct {
	ID        int64     `json:"id" db:"id"`
	BookID    int64     `json:"book_id" db:"book_id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	Position  *int      `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update.
type Request struct {
	ID        *int64 `json:"id"`
	BookID    int64  `json:"book_id"`
	AuthorID  int64  `json:"author_id"`
	IsPrimary bool   `json:"is_primary"`
	Position  *int   `json:"position"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
		validation.Field(&r.AuthorID, validation.Required.Error("author_id is required")),
		validation.Field(&r.Position, validation.Min(0)),
	)
}

func (r *Request) ToEntity() *BookAuthor {
	e := &BookAuthor{
		BookID:    r.BookID,
		AuthorID:  r.AuthorID,
		IsPrimary: r.IsPrimary,
		Position:  r.Position,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID        *int64 `json:"id"`
	BookID    *int64 `json:"book_id"`
	AuthorID  *int64 `json:"author_id"`
	IsPrimary *bool  `json:"is_primary"`
	Position  *int   `json:"position"`
}

func (e *BookAuthor) Apply(p *Patch) {
	if p.BookID != nil {
		e.BookID = *p.BookID
	}
	if p.AuthorID != nil {
		e.AuthorID = *p.AuthorID
	}
	if p.IsPrimary != nil {
		e.IsPrimary = *p.IsPrimary
	}
	if p.Position != nil {
		e.Position = p.Position
	}
}

type Criteria struct {
	ID        criteria.LongFilter `param:"id" db:"id"`
	BookID    criteria.LongFilter `param:"book_id" db:"book_id"`
	AuthorID  criteria.LongFilter `param:"author_id" db:"author_id"`
	IsPrimary criteria.BoolFilter `param:"is_primary" db:"is_primary"`
	Position  criteria.IntFilter  `param:"position" db:"position"`
	CreatedAt criteria.TimeFilter `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"book_id":    "book_id",
	"author_id":  "author_id",
	"is_primary": "is_primary",
	"position":   "position",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
