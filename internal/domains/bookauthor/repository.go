package bookauthor

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
	Create(ctx context.Context, e *BookAuthor) (*BookAuthor, error)
	GetByID(ctx context.Context, id int64) (*BookAuthor, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookAuthor, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, e *BookAuthor) (*BookAuthor, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const linkColumns = `id, book_id, author_id, is_primary, position, created_at, updated_at`

func scanBookAuthor(row pgx.Row) (*BookAuthor, error) {
	var e BookAuthor
	err := row.Scan(
		&e.ID,
		&e.BookID,
		&e.AuthorID,
		&e.IsPrimary,
		&e.Position,
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

func (r *postgresRepository) Create(ctx context.Context, e *BookAuthor) (*BookAuthor, error) {
	query := `
        INSERT INTO book_authors (book_id, author_id, is_primary, position)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + linkColumns

	created, err := scanBookAuthor(r.pool.QueryRow(ctx, query,
		e.BookID,
		e.AuthorID,
		e.IsPrimary,
		e.Position,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create bookauthor: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*BookAuthor, error) {
	e, err := scanBookAuthor(r.pool.QueryRow(ctx, `SELECT `+linkColumns+` FROM book_authors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bookauthor by id: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookAuthor, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + linkColumns + ` FROM book_authors`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query book_authors: %w", err)
	}
	defer rows.Close()

	var links []BookAuthor
	for rows.Next() {
		e, err := scanBookAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookauthor: %w", err)
		}
		links = append(links, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book_authors: %w", err)
	}

	return links, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM book_authors`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count book_authors: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *BookAuthor) (*BookAuthor, error) {
	query := `
        UPDATE book_authors
        SET book_id = $1,
            author_id = $2,
            is_primary = $3,
            position = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING ` + linkColumns

	updated, err := scanBookAuthor(r.pool.QueryRow(ctx, query,
		e.BookID,
		e.AuthorID,
		e.IsPrimary,
		e.Position,
		e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update bookauthor: %w", err)
	}

	return updated, nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM book_authors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete bookauthor: %w", err)
	}

	return nil
}
