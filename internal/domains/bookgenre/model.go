package bookgenre

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// BookGenre mirrors one row of the book_genres join table.
type BookGenre struct {
	ID        int64     `json:"id" db:"id"`
	BookID    int64     `json:"book_id" db:"book_id"`
	GenreID   int64     `json:"genre_id" db:"genre_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update.
type Request struct {
	ID      *int64 `json:"id"`
	BookID  int64  `json:"book_id"`
	GenreID int64  `json:"genre_id"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
		validation.Field(&r.GenreID, validation.Required.Error("genre_id is required")),
	)
}

func (r *Request) ToEntity() *BookGenre {
	e := &BookGenre{
		BookID:  r.BookID,
		GenreID: r.GenreID,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID      *int64 `json:"id"`
	BookID  *int64 `json:"book_id"`
	GenreID *int64 `json:"genre_id"`
}

func (e *BookGenre) Apply(p *Patch) {
	if p.BookID != nil {
		e.BookID = *p.BookID
	}
	if p.GenreID != nil {
		e.GenreID = *p.GenreID
	}
}

type Criteria struct {
	ID        criteria.LongFilter `param:"id" db:"id"`
	BookID    criteria.LongFilter `param:"book_id" db:"book_id"`
	GenreID   criteria.LongFilter `param:"genre_id" db:"genre_id"`
	CreatedAt criteria.TimeFilter `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"book_id":    "book_id",
	"genre_id":   "genre_id",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
