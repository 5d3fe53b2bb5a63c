package bookcollection

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// BookCollection mirrors one row of the book_collections join table.
// AddedAt is set by the database when the link is created.
type BookCollection struct {
	ID           int64     `json:"id" db:"id"`
	BookID       int64     `json:"book_id" db:"book_id"`
	CollectionID int64     `json:"collection_id" db:"collection_id"`
	Position     *int      `json:"position" db:"position"`
	AddedAt      time.Time `json:"added_at" db:"added_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update.
type Request struct {
	ID           *int64 `json:"id"`
	BookID       int64  `json:"book_id"`
	CollectionID int64  `json:"collection_id"`
	Position     *int   `json:"position"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
		validation.Field(&r.CollectionID, validation.Required.Error("collection_id is required")),
		validation.Field(&r.Position, validation.Min(0)),
	)
}

func (r *Request) ToEntity() *BookCollection {
	e := &BookCollection{
		BookID:       r.BookID,
		CollectionID: r.CollectionID,
		Position:     r.Position,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID           *int64 `json:"id"`
	BookID       *int64 `json:"book_id"`
	CollectionID *int64 `json:"collection_id"`
	Position     *int   `json:"position"`
}

func (e *BookCollection) Apply(p *Patch) {
	if p.BookID != nil {
		e.BookID = *p.BookID
	}
	if p.CollectionID != nil {
		e.CollectionID = *p.CollectionID
	}
	if p.Position != nil {
		e.Position = p.Position
	}
}

type Criteria struct {
	ID           criteria.LongFilter `param:"id" db:"id"`
	BookID       criteria.LongFilter `param:"book_id" db:"book_id"`
	CollectionID criteria.LongFilter `param:"collection_id" db:"collection_id"`
	Position     criteria.IntFilter  `param:"position" db:"position"`
	AddedAt      criteria.TimeFilter `param:"added_at" db:"added_at"`
	CreatedAt    criteria.TimeFilter `param:"created_at" db:"created_at"`
	UpdatedAt    criteria.TimeFilter `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":            "id",
	"book_id":       "book_id",
	"collection_id": "collection_id",
	"position":      "position",
	"added_at":      "added_at",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}
