package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"booker-backend/internal/shared/criteria"
	"booker-backend/pkg/jwt"
)

type Service interface {
	// Authentication
	Register(ctx context.Context, req *RegisterRequest) (*DTO, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)
	Account(ctx context.Context, userID int64) (*DTO, error)
	ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error

	// Admin management
	Create(ctx context.Context, req *Request) (*DTO, error)
	Get(ctx context.Context, id int64) (*DTO, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]DTO, int64, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Replace(ctx context.Context, id int64, req *Request) (*DTO, error)
	Patch(ctx context.Context, id int64, patch *Patch) (*DTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	jwt  *jwt.Manager
}

func NewService(repo Repository, manager *jwt.Manager) Service {
	return &service{repo: repo, jwt: manager}
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*DTO, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &User{
		Login:        req.Login,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		LangKey:      req.LangKey,
		Activated:    true,
		Role:         RoleUser,
	})
	if err != nil {
		return nil, err
	}

	return created.ToDTO(), nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.repo.GetByLogin(ctx, req.Login)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Activated {
		return nil, ErrNotActivated
	}

	return s.issueTokens(u)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Activated {
		return nil, ErrNotActivated
	}

	return s.issueTokens(u)
}

func (s *service) issueTokens(u *User) (*LoginResponse, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Login, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         u.ToDTO(),
	}, nil
}

func (s *service) Account(ctx context.Context, userID int64) (*DTO, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.ToDTO(), nil
}

func (s *service) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, hash)
}

func (s *service) Create(ctx context.Context, req *Request) (*DTO, error) {
	u := &User{
		Login:     req.Login,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ImageURL:  req.ImageURL,
		Activated: req.Activated,
		LangKey:   req.LangKey,
		Role:      req.Role,
	}

	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	return created.ToDTO(), nil
}

func (s *service) Get(ctx context.Context, id int64) (*DTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.ToDTO(), nil
}

func (s *service) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]DTO, int64, error) {
	users, err := s.repo.List(ctx, crit, page)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, crit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]DTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *users[i].ToDTO())
	}

	return dtos, total, nil
}

func (s *service) Count(ctx context.Context, crit *Criteria) (int64, error) {
	return s.repo.Count(ctx, crit)
}

// Replace performs a full update of the account fields; the password is
// only touched when the body carries one.
func (s *service) Replace(ctx context.Context, id int64, req *Request) (*DTO, error) {
	u := &User{
		ID:        id,
		Login:     req.Login,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ImageURL:  req.ImageURL,
		Activated: req.Activated,
		LangKey:   req.LangKey,
		Role:      req.Role,
	}

	var passwordHash *string
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	updated, err := s.repo.Replace(ctx, u, passwordHash)
	if err != nil {
		return nil, err
	}

	return updated.ToDTO(), nil
}

func (s *service) Patch(ctx context.Context, id int64, patch *Patch) (*DTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Apply(patch)

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	return updated.ToDTO(), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
