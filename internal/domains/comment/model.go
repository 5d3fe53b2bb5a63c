package comment

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// Comment mirrors one row of the comments table.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ReviewID  int64     `json:"review_id" db:"review_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update. The owner comes from
// the authenticated caller, never from the body.
type Request struct {
	ID       *int64 `json:"id"`
	Content  string `json:"content"`
	ReviewID int64  `json:"review_id"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 2000),
		),
		validation.Field(&r.ReviewID, validation.Required.Error("review_id is required")),
	)
}

func (r *Request) ToEntity() *Comment {
	e := &Comment{
		Content:  r.Content,
		ReviewID: r.ReviewID,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID       *int64  `json:"id"`
	Content  *string `json:"content"`
	ReviewID *int64  `json:"review_id"`
}

func (e *Comment) Apply(p *Patch) {
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.ReviewID != nil {
		e.ReviewID = *p.ReviewID
	}
}

type Criteria struct {
	ID        criteria.LongFilter   `param:"id" db:"id"`
	Content   criteria.StringFilter `param:"content" db:"content"`
	UserID    criteria.LongFilter   `param:"user_id" db:"user_id"`
	ReviewID  criteria.LongFilter   `param:"review_id" db:"review_id"`
	CreatedAt criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"user_id":    "user_id",
	"review_id":  "review_id",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
