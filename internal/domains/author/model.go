package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booker-backend/internal/shared/criteria"
)

// Author mirrors one row of the authors table.
type Author struct {
	ID          int64      `json:"id" db:"id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	FullName    *string    `json:"full_name" db:"full_name"`
	Biography   *string    `json:"biography" db:"biography"`
	PhotoURL    *string    `json:"photo_url" db:"photo_url"`
	BirthDate   *time.Time `json:"birth_date" db:"birth_date"`
	DeathDate   *time.Time `json:"death_date" db:"death_date"`
	Nationality *string    `json:"nationality" db:"nationality"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Request is the payload for create and full update.
type Request struct {
	ID          *int64     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    *string    `json:"full_name"`
	Biography   *string    `json:"biography"`
	PhotoURL    *string    `json:"photo_url"`
	BirthDate   *time.Time `json:"birth_date"`
	DeathDate   *time.Time `json:"death_date"`
	Nationality *string    `json:"nationality"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Nationality, validation.Length(2, 100)),
	)
}

func (r *Request) ToEntity() *Author {
	a := &Author{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		FullName:    r.FullName,
		Biography:   r.Biography,
		PhotoURL:    r.PhotoURL,
		BirthDate:   r.BirthDate,
		DeathDate:   r.DeathDate,
		Nationality: r.Nationality,
	}
	if r.ID != nil {
		a.ID = *r.ID
	}
	return a
}

// Patch carries merge-patch semantics.
type Patch struct {
	ID          *int64     `json:"id"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	FullName    *string    `json:"full_name"`
	Biography   *string    `json:"biography"`
	PhotoURL    *string    `json:"photo_url"`
	BirthDate   *time.Time `json:"birth_date"`
	DeathDate   *time.Time `json:"death_date"`
	Nationality *string    `json:"nationality"`
}

func (a *Author) Apply(p *Patch) {
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.FullName != nil {
		a.FullName = p.FullName
	}
	if p.Biography != nil {
		a.Biography = p.Biography
	}
	if p.PhotoURL != nil {
		a.PhotoURL = p.PhotoURL
	}
	if p.BirthDate != nil {
		a.BirthDate = p.BirthDate
	}
	if p.DeathDate != nil {
		a.DeathDate = p.DeathDate
	}
	if p.Nationality != nil {
		a.Nationality = p.Nationality
	}
}

type Criteria struct {
	ID          criteria.LongFilter   `param:"id" db:"id"`
	FirstName   criteria.StringFilter `param:"first_name" db:"first_name"`
	LastName    criteria.StringFilter `param:"last_name" db:"last_name"`
	FullName    criteria.StringFilter `param:"full_name" db:"full_name"`
	Biography   criteria.StringFilter `param:"biography" db:"biography"`
	Nationality criteria.StringFilter `param:"nationality" db:"nationality"`
	BirthDate   criteria.TimeFilter   `param:"birth_date" db:"birth_date"`
	DeathDate   criteria.TimeFilter   `param:"death_date" db:"death_date"`
	CreatedAt   criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt   criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":          "id",
	"first_name":  "first_name",
	"last_name":   "last_name",
	"full_name":   "full_name",
	"nationality": "nationality",
	"birth_date":  "birth_date",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}
