package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"booker-backend/internal/shared/criteria"
)

// Book mirrors one row of the books table. average_rating, total_ratings and
// total_reviews are denormalized aggregates maintained by the worker, never
// written by API requests.
type Book struct {
	ID              int64               `json:"id" db:"id"`
	ISBN            string              `json:"isbn" db:"isbn"`
	Title           string              `json:"title" db:"title"`
	Description     *string             `json:"description" db:"description"`
	CoverImageURL   *string             `json:"cover_image_url" db:"cover_image_url"`
	PageCount       *int                `json:"page_count" db:"page_count"`
	PublicationDate *time.Time          `json:"publication_date" db:"publication_date"`
	Language        *string             `json:"language" db:"language"`
	AverageRating   decimal.NullDecimal `json:"average_rating" db:"average_rating"`
	TotalRatings    int                 `json:"total_ratings" db:"total_ratings"`
	TotalReviews    int                 `json:"total_reviews" db:"total_reviews"`
	PublisherID     *int64              `json:"publisher_id" db:"publisher_id"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update. The id must be absent
// on create and must match the path id on update.
type Request struct {
	ID              *int64     `json:"id"`
	ISBN            string     `json:"isbn"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	CoverImageURL   *string    `json:"cover_image_url"`
	PageCount       *int       `json:"page_count"`
	PublicationDate *time.Time `json:"publication_date"`
	Language        *string    `json:"language"`
	PublisherID     *int64     `json:"publisher_id"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Length(10, 17),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.PageCount, validation.Min(1)),
		validation.Field(&r.Language, validation.Length(2, 10)),
	)
}

// ToEntity builds the entity written to storage; aggregates stay zeroed.
func (r *Request) ToEntity() *Book {
	b := &Book{
		ISBN:            r.ISBN,
		Title:           r.Title,
		Description:     r.Description,
		CoverImageURL:   r.CoverImageURL,
		PageCount:       r.PageCount,
		PublicationDate: r.PublicationDate,
		Language:        r.Language,
		PublisherID:     r.PublisherID,
	}
	if r.ID != nil {
		b.ID = *r.ID
	}
	return b
}

// Patch carries merge-patch semantics: only fields present in the request
// body are non-nil, and only those are applied to the stored row.
type Patch struct {
	ID              *int64     `json:"id"`
	ISBN            *string    `json:"isbn"`
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	CoverImageURL   *string    `json:"cover_image_url"`
	PageCount       *int       `json:"page_count"`
	PublicationDate *time.Time `json:"publication_date"`
	Language        *string    `json:"language"`
	PublisherID     *int64     `json:"publisher_id"`
}

// Apply overwrites only the fields the patch carries.
func (b *Book) Apply(p *Patch) {
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = p.Description
	}
	if p.CoverImageURL != nil {
		b.CoverImageURL = p.CoverImageURL
	}
	if p.PageCount != nil {
		b.PageCount = p.PageCount
	}
	if p.PublicationDate != nil {
		b.PublicationDate = p.PublicationDate
	}
	if p.Language != nil {
		b.Language = p.Language
	}
	if p.PublisherID != nil {
		b.PublisherID = p.PublisherID
	}
}

// Criteria holds one optional filter condition per queryable field, bound
// from field.operator query parameters.
type Criteria struct {
	ID              criteria.LongFilter   `param:"id" db:"id"`
	ISBN            criteria.StringFilter `param:"isbn" db:"isbn"`
	Title           criteria.StringFilter `param:"title" db:"title"`
	Description     criteria.StringFilter `param:"description" db:"description"`
	CoverImageURL   criteria.StringFilter `param:"cover_image_url" db:"cover_image_url"`
	PageCount       criteria.IntFilter    `param:"page_count" db:"page_count"`
	PublicationDate criteria.TimeFilter   `param:"publication_date" db:"publication_date"`
	Language        criteria.StringFilter `param:"language" db:"language"`
	AverageRating   criteria.FloatFilter  `param:"average_rating" db:"average_rating"`
	TotalRatings    criteria.IntFilter    `param:"total_ratings" db:"total_ratings"`
	TotalReviews    criteria.IntFilter    `param:"total_reviews" db:"total_reviews"`
	PublisherID     criteria.LongFilter   `param:"publisher_id" db:"publisher_id"`
	CreatedAt       criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt       criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

// SortableColumns whitelists sort fields for list queries.
var SortableColumns = map[string]string{
	"id":               "id",
	"isbn":             "isbn",
	"title":            "title",
	"page_count":       "page_count",
	"publication_date": "publication_date",
	"language":         "language",
	"average_rating":   "average_rating",
	"total_ratings":    "total_ratings",
	"total_reviews":    "total_reviews",
	"publisher_id":     "publisher_id",
	"created_at":       "created_at",
	"updated_at":       "updated_at",
}
