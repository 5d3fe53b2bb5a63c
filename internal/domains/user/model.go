package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"booker-backend/internal/shared/criteria"
)

// Roles known to the authorities table.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User mirrors one row of the users table. The password hash never leaves
// the domain package.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Login        string    `json:"login" db:"login"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    *string   `json:"first_name" db:"first_name"`
	LastName     *string   `json:"last_name" db:"last_name"`
	ImageURL     *string   `json:"image_url" db:"image_url"`
	Activated    bool      `json:"activated" db:"activated"`
	LangKey      *string   `json:"lang_key" db:"lang_key"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DTO is the outward representation of a user.
type DTO struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	ImageURL  *string   `json:"image_url"`
	Activated bool      `json:"activated"`
	LangKey   *string   `json:"lang_key"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToDTO() *DTO {
	return &DTO{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImageURL:  u.ImageURL,
		Activated: u.Activated,
		LangKey:   u.LangKey,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type RegisterRequest struct {
	Login     string  `json:"login"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	LangKey   *string `json:"lang_key"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login,
			validation.Required.Error("login is required"),
			validation.Length(1, 50),
			validation.Match(loginPattern).Error("login may contain letters, digits, dots, dashes and underscores"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 100),
		),
	)
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required.Error("login is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *DTO   `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required.Error("current password is required")),
		validation.Field(&r.NewPassword,
			validation.Required.Error("new password is required"),
			validation.Length(8, 100),
		),
	)
}

// Request is the admin payload for create and full update.
type Request struct {
	ID        *int64  `json:"id"`
	Login     string  `json:"login"`
	Email     string  `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ImageURL  *string `json:"image_url"`
	Activated bool    `json:"activated"`
	LangKey   *string `json:"lang_key"`
	Role      string  `json:"role"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login,
			validation.Required.Error("login is required"),
			validation.Length(1, 50),
			validation.Match(loginPattern).Error("login may contain letters, digits, dots, dashes and underscores"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email,
		),
		validation.Field(&r.Password, validation.Length(8, 100)),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In(RoleUser, RoleAdmin).Error("role must be ROLE_USER or ROLE_ADMIN"),
		),
	)
}

// Patch carries merge-patch semantics for admin updates.
type Patch struct {
	ID        *int64  `json:"id"`
	Login     *string `json:"login"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ImageURL  *string `json:"image_url"`
	Activated *bool   `json:"activated"`
	LangKey   *string `json:"lang_key"`
	Role      *string `json:"role"`
}

func (u *User) Apply(p *Patch) {
	if p.Login != nil {
		u.Login = *p.Login
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = p.FirstName
	}
	if p.LastName != nil {
		u.LastName = p.LastName
	}
	if p.ImageURL != nil {
		u.ImageURL = p.ImageURL
	}
	if p.Activated != nil {
		u.Activated = *p.Activated
	}
	if p.LangKey != nil {
		u.LangKey = p.LangKey
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

type Criteria struct {
	ID        criteria.LongFilter   `param:"id" db:"id"`
	Login     criteria.StringFilter `param:"login" db:"login"`
	Email     criteria.StringFilter `param:"email" db:"email"`
	FirstName criteria.StringFilter `param:"first_name" db:"first_name"`
	LastName  criteria.StringFilter `param:"last_name" db:"last_name"`
	Activated criteria.BoolFilter   `param:"activated" db:"activated"`
	Role      criteria.StringFilter `param:"role" db:"role"`
	CreatedAt criteria.TimeFilter   `param:"created_at" db:"created_at"`
	UpdatedAt criteria.TimeFilter   `param:"updated_at" db:"updated_at"`
}

var SortableColumns = map[string]string{
	"id":         "id",
	"login":      "login",
	"email":      "email",
	"first_name": "first_name",
	"last_name":  "last_name",
	"activated":  "activated",
	"role":       "role",
	"created_at": "created_at",
	"updated_at": "updated_at",
}
