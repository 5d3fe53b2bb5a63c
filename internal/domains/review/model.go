package review

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// Review mirrors one row of the reviews table. HelpfulCount is maintained
// outside the CRUD surface and is never written by request handlers.
type Review struct {
	ID               int64     `json:"id" db:"id"`
	Content          *string   `json:"content" db:"content"`
	Rating           *int      `json:"rating" db:"rating"`
	ContainsSpoilers bool      `json:"contains_spoilers" db:"contains_spoilers"`
	UserID           int64     `json:"user_id" db:"user_id"`
	BookID           int64     `json:"book_id" db:"book_id"`
	HelpfulCount     int       `json:"helpful_count" db:"helpful_count"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update. The owner comes from
// the authenticated caller, never from the body.
type Request struct {
	ID               *int64  `json:"id"`
	Content          *string `json:"content"`
	Rating           *int    `json:"rating"`
	ContainsSpoilers bool    `json:"contains_spoilers"`
	BookID           int64   `json:"book_id"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
		validation.Field(&r.Rating, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Content, validation.Length(1, 10000)),
	)
}

func (r *Request) ToEntity() *Review {
	e := &Review{
		Content:          r.Content,
		Rating:           r.Rating,
		ContainsSpoilers: r.ContainsSpoilers,
		BookID:           r.BookID,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID               *int64  `json:"id"`
	Content          *string `json:"content"`
	Rating           *int    `json:"rating"`
	ContainsSpoilers *bool   `json:"contains_spoilers"`
	BookID           *int64  `json:"book_id"`
}

func (e *Review) Apply(p *Patch) {
	if p.Content != nil {
		e.Content = p.Content
	}
	if p.Rating != nil {
		e.Rating = p.Rating
	}
	if p.ContainsSpoilers != nil {
		e.ContainsSpoilers = *p.ContainsSpoilers
	}
	if p.BookID != nil {
		e.BookID = *p.BookID
	}
}

type Criteria struct {
	ID               criteria.LongFilter   `param:"id" db:"id"`
	Content          criteria.StringFilter `param:"content" db:"content"`
	Rating           criteria.IntFilter    `param:"rating" db:"rating"`
	ContainsSpoilers criteria.BoolFilter   `param:"contains_spoilers" db:"contains_spoilers"`
	UserID           criteria.LongFilter   `param:"user_id" db:"user_id"`
	BookID           criteria.LongFilter   `param:"book_id" db:"book_id"`
	HelpfulCount     criteria.IntFilter    `param:"helpful_count" db:"helpful_count"`
	CreatedAt        criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt        criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":            "id",
	"rating":        "rating",
	"helpful_count": "helpful_count",
	"user_id":       "user_id",
	"book_id":       "book_id",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}
