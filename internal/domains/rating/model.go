package rating

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// Rating mirrors one row of the ratings table.
type Rating struct {
	ID        int64     `json:"id" db:"id"`
	Rating    int       `json:"rating" db:"rating"`
	UserID    int64     `json:"user_id" db:"user_id"`
	BookID    int64     `json:"book_id" db:"book_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update. The owner comes from
// the authenticated caller, never from the body.
type Request struct {
	ID     *int64 `json:"id"`
	Rating int    `json:"rating"`
	BookID int64  `json:"book_id"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1), validation.Max(5),
		),
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
	)
}

func (r *Request) ToEntity() *Rating {
	e := &Rating{
		Rating: r.Rating,
		BookID: r.BookID,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID     *int64 `json:"id"`
	Rating *int   `json:"rating"`
	BookID *int64 `json:"book_id"`
}

func (e *Rating) Apply(p *Patch) {
	if p.Rating != nil {
		e.Rating = *p.Rating
	}
	if p.BookID != nil {
		e.BookID = *p.BookID
	}
}

type Criteria struct {
	ID        criteria.LongFilter `param:"id" db:"id"`
	Rating    criteria.IntFilter  `param:"rating" db:"rating"`
	UserID    criteria.LongFilter `param:"user_id" db:"user_id"`
	BookID    criteria.LongFilter `param:"book_id" db:"book_id"`
	CreatedAt criteria.TimeFilter `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"rating":     "rating",
	"user_id":    "user_id",
	"book_id":    "book_id",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
