package bookcollection

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
	Create(ctx context.Context, e *BookCollection) (*BookCollection, error)
	GetByID(ctx context.Context, id int64) (*BookCollection, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookCollection, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, e *BookCollection) (*BookCollection, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const linkColumns = `id, book_id, collection_id, position, added_at, created_at, updated_at`

func scanBookCollection(row pgx.Row) (*BookCollection, error) {
	var e BookCollection
	err := row.Scan(
		&e.ID,
		&e.BookID,
		&e.CollectionID,
		&e.Position,
		&e.AddedAt,
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

func (r *postgresRepository) Create(ctx context.Context, e *BookCollection) (*BookCollection, error) {
	query := `
        INSERT INTO book_collections (book_id, collection_id, position)
        VALUES ($1, $2, $3)
        RETURNING ` + linkColumns

	created, err := scanBookCollection(r.pool.QueryRow(ctx, query,
		e.BookID,
		e.CollectionID,
		e.Position,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create bookcollection: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*BookCollection, error) {
	e, err := scanBookCollection(r.pool.QueryRow(ctx, `SELECT `+linkColumns+` FROM book_collections WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bookcollection by id: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookCollection, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + linkColumns + ` FROM book_collections`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query book_collections: %w", err)
	}
	defer rows.Close()

	var links []BookCollection
	for rows.Next() {
		e, err := scanBookCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookcollection: %w", err)
		}
		links = append(links, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book_collections: %w", err)
	}

	return links, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM book_collections`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count book_collections: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *BookCollection) (*BookCollection, error) {
	query := `
        UPDATE book_collections
        SET book_id = $1,
            collection_id = $2,
            position = $3,
            updated_at = NOW()
        WHERE id = $4
        RETURNING ` + linkColumns

	updated, err := scanBookCollection(r.pool.QueryRow(ctx, query,
		e.BookID,
		e.CollectionID,
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
		return nil, fmt.Errorf("failed to update bookcollection: %w", err)
	}

	return updated, nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM book_collections WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete bookcollection: %w", err)
	}

	return nil
}
