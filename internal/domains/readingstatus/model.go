package readingstatus

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// Recognized reading states.
const (
	StatusWantToRead = "WANT_TO_READ"
	StatusReading    = "READING"
	StatusRead       = "READ"
	StatusAbandoned  = "ABANDONED"
)

// ReadingStatus mirrors one row of the reading_statuses table.
type ReadingStatus struct {
	ID           int64      `json:"id" db:"id"`
	Status       string     `json:"status" db:"status"`
	StartedDate  *time.Time `json:"started_date" db:"started_date"`
	FinishedDate *time.Time `json:"finished_date" db:"finished_date"`
	CurrentPage  *int       `json:"current_page" db:"current_page"`
	UserID       int64      `json:"user_id" db:"user_id"`
	BookID       int64      `json:"book_id" db:"book_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update. The owner comes from
// the authenticated caller, never from the body.
type Request struct {
	ID           *int64     `json:"id"`
	Status       string     `json:"status"`
	StartedDate  *time.Time `json:"started_date"`
	FinishedDate *time.Time `json:"finished_date"`
	CurrentPage  *int       `json:"current_page"`
	BookID       int64      `json:"book_id"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In(StatusWantToRead, StatusReading, StatusRead, StatusAbandoned).
				Error("status must be one of WANT_TO_READ, READING, READ, ABANDONED"),
		),
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
		validation.Field(&r.CurrentPage, validation.Min(0)),
	)
}

func (r *Request) ToEntity() *ReadingStatus {
	e := &ReadingStatus{
		Status:       r.Status,
		StartedDate:  r.StartedDate,
		FinishedDate: r.FinishedDate,
		CurrentPage:  r.CurrentPage,
		BookID:       r.BookID,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	return e
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID           *int64     `json:"id"`
	Status       *string    `json:"status"`
	StartedDate  *time.Time `json:"started_date"`
	FinishedDate *time.Time `json:"finished_date"`
	CurrentPage  *int       `json:"current_page"`
	BookID       *int64     `json:"book_id"`
}

func (e *ReadingStatus) Apply(p *Patch) {
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.StartedDate != nil {
		e.StartedDate = p.StartedDate
	}
	if p.FinishedDate != nil {
		e.FinishedDate = p.FinishedDate
	}
	if p.CurrentPage != nil {
		e.CurrentPage = p.CurrentPage
	}
	if p.BookID != nil {
		e.BookID = *p.BookID
	}
}

type Criteria struct {
	ID           criteria.LongFilter   `param:"id" db:"id"`
	Status       criteria.StringFilter `param:"status" db:"status"`
	StartedDate  criteria.TimeFilter   `param:"started_date" db:"started_date"`
	FinishedDate criteria.TimeFilter   `param:"finished_date" db:"finished_date"`
	CurrentPage  criteria.IntFilter    `param:"current_page" db:"current_page"`
	UserID       criteria.LongFilter   `param:"user_id" db:"user_id"`
	BookID       criteria.LongFilter   `param:"book_id" db:"book_id"`
	CreatedAt    criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt    criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":            "id",
	"status":        "status",
	"started_date":  "started_date",
	"finished_date": "finished_date",
	"current_page":  "current_page",
	"user_id":       "user_id",
	"book_id":       "book_id",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}
