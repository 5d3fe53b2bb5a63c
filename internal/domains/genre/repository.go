package genre

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"booker-backend/internal/shared/criteria"
	"booker-backend/pkg/cache"
)

type Repository interface {
	Create(ctx context.Context, e *Genre) (*Genre, error)
	GetByID(ctx context.Context, id int64) (*Genre, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Genre, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, e *Genre) (*Genre, error)
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
	cacheKeyPrefix = "genre:"
	cacheTTL       = 15 * time.Minute
)

const genreColumns = `id, name, slug, description, created_at, updated_at`

func scanGenre(row pgx.Row) (*Genre, error) {
	var e Genre
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Slug,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicateSlug
		}
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, e *Genre) (*Genre, error) {
	query := `
        INSERT INTO genres (name, slug, description)
        VALUES ($1, $2, $3)
        RETURNING ` + genreColumns

	created, err := scanGenre(r.pool.QueryRow(ctx, query,
		e.Name,
		e.Slug,
		e.Description,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	return created, nil
}

func genreCacheKey(id int64) string {
	return fmt.Sprintf("%s%d", cacheKeyPrefix, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Genre, error) {
	cacheKey := genreCacheKey(id)

	var cached Genre
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	e, err := scanGenre(r.pool.QueryRow(ctx, `SELECT `+genreColumns+` FROM genres WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, e, cacheTTL)

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Genre, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + genreColumns + ` FROM genres`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []Genre
	for rows.Next() {
		e, err := scanGenre(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genres: %w", err)
	}

	return genres, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM genres`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count genres: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *Genre) (*Genre, error) {
	query := `
        UPDATE genres
        SET name = $1,
            slug = $2,
            description = $3,
            updated_at = NOW()
        WHERE id = $4
        RETURNING ` + genreColumns

	updated, err := scanGenre(r.pool.QueryRow(ctx, query,
		e.Name,
		e.Slug,
		e.Description,
		e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	r.cache.Delete(ctx, genreCacheKey(e.ID))

	return updated, nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	r.cache.Delete(ctx, genreCacheKey(id))

	return nil
}
