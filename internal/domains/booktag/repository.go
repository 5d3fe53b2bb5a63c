package booktag

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
	Create(ctx context.Context, e *BookTag) (*BookTag, error)
	GetByID(ctx context.Context, id int64) (*BookTag, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookTag, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, e *BookTag) (*BookTag, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const linkColumns = `id, book_id, tag_id, created_at, updated_at`

func scanBookTag(row pgx.Row) (*BookTag, error) {
	var e BookTag
	err := row.Scan(
		&e.ID,
		&e.BookID,
		&e.TagID,
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
			return ErrDuplicateLink
		case "23503": // foreign_key_violation
			return ErrInvalidReference
		}
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, e *BookTag) (*BookTag, error) {
	query := `
        INSERT INTO book_tags (book_id, tag_id)
        VALUES ($1, $2)
        RETURNING ` + linkColumns

	created, err := scanBookTag(r.pool.QueryRow(ctx, query,
		e.BookID,
		e.TagID,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create booktag: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*BookTag, error) {
	e, err := scanBookTag(r.pool.QueryRow(ctx, `SELECT `+linkColumns+` FROM book_tags WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booktag by id: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookTag, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + linkColumns + ` FROM book_tags`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query book_tags: %w", err)
	}
	defer rows.Close()

	var links []BookTag
	for rows.Next() {
		e, err := scanBookTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booktag: %w", err)
		}
		links = append(links, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book_tags: %w", err)
	}

	return links, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM book_tags`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count book_tags: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *BookTag) (*BookTag, error) {
	query := `
        UPDATE book_tags
        SET book_id = $1,
            tag_id = $2,
            updated_at = NOW()
        WHERE id = $3
        RETURNING ` + linkColumns

	updated, err := scanBookTag(r.pool.QueryRow(ctx, query,
		e.BookID,
		e.TagID,
		e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update booktag: %w", err)
	}

	return updated, nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM book_tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete booktag: %w", err)
	}

	return nil
}
