package publisher

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"booker-backend/internal/shared/criteria"
)

// Publisher mirrors one row of the publishers table.
type Publisher struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	WebsiteURL  *string    `json:"website_url" db:"website_url"`
	LogoURL     *string    `json:"logo_url" db:"logo_url"`
	FoundedDate *time.Time `json:"founded_date" db:"founded_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update.
type Request struct {
	ID          *int64     `json:"id"`
	Name        string     `json:"name"`
	WebsiteURL  *string    `json:"website_url"`
	LogoURL     *string    `json:"logo_url"`
	FoundedDate *time.Time `json:"founded_date"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.WebsiteURL, is.URL),
	)
}

func (r *Request) ToEntity() *Publisher {
	p := &Publisher{
		Name:        r.Name,
		WebsiteURL:  r.WebsiteURL,
		LogoURL:     r.LogoURL,
		FoundedDate: r.FoundedDate,
	}
	if r.ID != nil {
		p.ID = *r.ID
	}
	return p
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID          *int64     `json:"id"`
	Name        *string    `json:"name"`
	WebsiteURL  *string    `json:"website_url"`
	LogoURL     *string    `json:"logo_url"`
	FoundedDate *time.Time `json:"founded_date"`
}

func (p *Publisher) Apply(patch *Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.WebsiteURL != nil {
		p.WebsiteURL = patch.WebsiteURL
	}
	if patch.LogoURL != nil {
		p.LogoURL = patch.LogoURL
	}
	if patch.FoundedDate != nil {
		p.FoundedDate = patch.FoundedDate
	}
}

type Criteria struct {
	ID          criteria.LongFilter   `param:"id" db:"id"`
	Name        criteria.StringFilter `param:"name" db:"name"`
	WebsiteURL  criteria.StringFilter `param:"website_url" db:"website_url"`
	FoundedDate criteria.TimeFilter   `param:"founded_date" db:"founded_date"`
	CreatedAt   criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt   criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"founded_date": "founded_date",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}
