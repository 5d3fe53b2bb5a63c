package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"booker-backend/internal/shared/criteria"
)

type Repository interface {
	Create(ctx context.Context, e *Collection) (*Collection, error)
	GetByID(ctx context.Context, id int64) (*Collection, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Collection, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, e *Collection) (*Collection, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const collectionColumns = `id, name, description, is_public, user_id, book_count, created_at, updated_at`

func scanCollection(row pgx.Row) (*Collection, error) {
	var e Collection
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&e.IsPublic,
		&e.UserID,
		&e.BookCount,
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
		case "23503": // foreign_key_violation
			return ErrInvalidReference
		}
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, e *Collection) (*Collection, error) {
	query := `
        INSERT INTO collections (name, description, is_public, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + collectionColumns

	created, err := scanCollection(r.pool.QueryRow(ctx, query,
		e.Name,
		e.Description,
		e.IsPublic,
		e.UserID,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Collection, error) {
	e, err := scanCollection(r.pool.QueryRow(ctx, `SELECT `+collectionColumns+` FROM collections WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get collection by id: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Collection, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + collectionColumns + ` FROM collections`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	var collections []Collection
	for rows.Next() {
		e, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return collections, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM collections`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count collections: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *Collection) (*Collection, error) {
	query := `
        UPDATE collections
        SET name = $1,
            description = $2,
            is_public = $3,
            user_id = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING ` + collectionColumns

	updated, err := scanCollection(r.pool.QueryRow(ctx, query,
		e.Name,
		e.Description,
		e.IsPublic,
		e.UserID,
		e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	return updated, nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return nil
}
