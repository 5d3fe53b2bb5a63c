package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"booker-backend/internal/shared/criteria"
	"booker-backend/pkg/database"
)

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]User, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, u *User) (*User, error)
	// Replace atomically rewrites the account fields and, when passwordHash
	// is non-nil, the password in the same transaction.
	Replace(ctx context.Context, u *User, passwordHash *string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const userColumns = `id, login, email, password_hash, first_name, last_name, image_url, activated, lang_key, role, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Login,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.ImageURL,
		&u.Activated,
		&u.LangKey,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// mapPgError tells the two unique constraints apart so the caller can say
// which field collided.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return ErrDuplicateEmail
		}
		return ErrDuplicateLogin
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, u *User) (*User, error) {
	query := `
        INSERT INTO users (login, email, password_hash, first_name, last_name, image_url, activated, lang_key, role)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		u.Login,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.ImageURL,
		u.Activated,
		u.LangKey,
		u.Role,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByLogin(ctx context.Context, login string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE login = $1`, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by login: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]User, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + userColumns + ` FROM users`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM users`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *User) (*User, error) {
	query := `
        UPDATE users
        SET login = $1,
            email = $2,
            first_name = $3,
            last_name = $4,
            image_url = $5,
            activated = $6,
            lang_key = $7,
            role = $8,
            updated_at = NOW()
        WHERE id = $9
        RETURNING ` + userColumns

	updated, err := scanUser(r.pool.QueryRow(ctx, query,
		u.Login,
		u.Email,
		u.FirstName,
		u.LastName,
		u.ImageURL,
		u.Activated,
		u.LangKey,
		u.Role,
		u.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) Replace(ctx context.Context, u *User, passwordHash *string) (*User, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*User, error) {
		query := `
        UPDATE users
        SET login = $1,
            email = $2,
            first_name = $3,
            last_name = $4,
            image_url = $5,
            activated = $6,
            lang_key = $7,
            role = $8,
            updated_at = NOW()
        WHERE id = $9
        RETURNING ` + userColumns

		updated, err := scanUser(tx.QueryRow(ctx, query,
			u.Login,
			u.Email,
			u.FirstName,
			u.LastName,
			u.ImageURL,
			u.Activated,
			u.LangKey,
			u.Role,
			u.ID,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			if mapped := mapPgError(err); mapped != err {
				return nil, mapped
			}
			return nil, fmt.Errorf("failed to replace user: %w", err)
		}

		if passwordHash != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE users SET password_hash = $1 WHERE id = $2`,
				*passwordHash, u.ID,
			); err != nil {
				return nil, fmt.Errorf("failed to update password: %w", err)
			}
		}

		return updated, nil
	})
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
