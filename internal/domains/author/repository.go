package author

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booker-backend/internal/shared/criteria"
	"booker-backend/pkg/cache"
)

type Repository interface {
	Create(ctx context.Context, a *Author) (*Author, error)
	GetByID(ctx context.Context, id int64) (*Author, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Author, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, a *Author) (*Author, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute
)

const authorColumns = `id, first_name, last_name, full_name, biography, photo_url,
	birth_date, death_date, nationality, created_at, updated_at`

func scanAuthor(row pgx.Row) (*Author, error) {
	var a Author
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.FullName,
		&a.Biography,
		&a.PhotoURL,
		&a.BirthDate,
		&a.DeathDate,
		&a.Nationality,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *Author) (*Author, error) {
	query := `
        INSERT INTO authors (first_name, last_name, full_name, biography, photo_url,
            birth_date, death_date, nationality)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.FirstName,
		a.LastName,
		a.FullName,
		a.Biography,
		a.PhotoURL,
		a.BirthDate,
		a.DeathDate,
		a.Nationality,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Author, error) {
	cacheKey := fmt.Sprintf("%s%d", authorCacheKeyPrefix, id)

	var cached Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	a, err := scanAuthor(r.pool.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return a, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Author, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + authorColumns + ` FROM authors`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM authors`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *Author) (*Author, error) {
	query := `
        UPDATE authors
        SET first_name = $1,
            last_name = $2,
            full_name = $3,
            biography = $4,
            photo_url = $5,
            birth_date = $6,
            death_date = $7,
            nationality = $8,
            updated_at = NOW()
        WHERE id = $9
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.FirstName,
		a.LastName,
		a.FullName,
		a.Biography,
		a.PhotoURL,
		a.BirthDate,
		a.DeathDate,
		a.Nationality,
		a.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", authorCacheKeyPrefix, a.ID))

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", authorCacheKeyPrefix, id))

	return nil
}
