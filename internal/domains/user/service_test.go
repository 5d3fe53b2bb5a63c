package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-backend/internal/shared/criteria"
	"booker-backend/pkg/jwt"
)

type fakeRepo struct {
	rows   map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[int64]*User), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, u *User) (*User, error) {
	for _, existing := range r.rows {
		if existing.Login == u.Login {
			return nil, ErrDuplicateLogin
		}
		if existing.Email == u.Email {
			return nil, ErrDuplicateEmail
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.rows[u.ID] = u
	return u, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByLogin(_ context.Context, login string) (*User, error) {
	for _, u := range r.rows {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, _ *Criteria, _ criteria.Pageable) ([]User, error) {
	return nil, nil
}

func (r *fakeRepo) Count(_ context.Context, _ *Criteria) (int64, error) {
	return 0, nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) (*User, error) {
	existing, ok := r.rows[u.ID]
	if !ok {
		return nil, ErrNotFound
	}
	u.PasswordHash = existing.PasswordHash
	r.rows[u.ID] = u
	return u, nil
}

func (r *fakeRepo) Replace(_ context.Context, u *User, passwordHash *string) (*User, error) {
	updated, err := r.Update(context.Background(), u)
	if err != nil {
		return nil, err
	}
	if passwordHash != nil {
		updated.PasswordHash = *passwordHash
	}
	return updated, nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.rows, id)
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewService(repo, manager), repo
}

func register(t *testing.T, svc Service) *DTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), &RegisterRequest{
		Login:    "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return dto
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	dto := register(t, svc)

	assert.Equal(t, "alice", dto.Login)
	assert.Equal(t, RoleUser, dto.Role)
	assert.True(t, dto.Activated)

	stored := repo.rows[dto.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Login:    "alice",
		Email:    "other@example.com",
		Password: "another-pass",
	})

	assert.ErrorIs(t, err, ErrDuplicateLogin)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)

	res, err := svc.Login(context.Background(), &LoginRequest{
		Login:    "alice",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "alice", res.User.Login)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Login:    "alice",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Login:    "nobody",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DeactivatedUser(t *testing.T) {
	svc, repo := newTestService()
	dto := register(t, svc)
	repo.rows[dto.ID].Activated = false

	_, err := svc.Login(context.Background(), &LoginRequest{
		Login:    "alice",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, ErrNotActivated)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Login:    "alice",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "alice", refreshed.User.Login)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Login:    "alice",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	dto := register(t, svc)

	err := svc.ChangePassword(context.Background(), dto.ID, &ChangePasswordRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "battery-staple",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{Login: "alice", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Login: "alice", Password: "battery-staple"})
	assert.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, _ := newTestService()
	dto := register(t, svc)

	err := svc.ChangePassword(context.Background(), dto.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery-staple",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
