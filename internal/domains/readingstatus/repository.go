package readingstatus

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
	Create(ctx context.Context, e *ReadingStatus) (*ReadingStatus, error)
	GetByID(ctx context.Context, id int64) (*ReadingStatus, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]ReadingStatus, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, e *ReadingStatus) (*ReadingStatus, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const readingstatusColumns = `id, status, started_date, finished_date, current_page, user_id, book_id, created_at, updated_at`

func scanReadingStatus(row pgx.Row) (*ReadingStatus, error) {
	var e ReadingStatus
	err := row.Scan(
		&e.ID,
		&e.Status,
		&e.StartedDate,
		&e.FinishedDate,
		&e.CurrentPage,
		&e.UserID,
		&e.BookID,
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

func (r *postgresRepository) Create(ctx context.Context, e *ReadingStatus) (*ReadingStatus, error) {
	query := `
        INSERT INTO reading_statuses (status, started_date, finished_date, current_page, user_id, book_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + readingstatusColumns

	created, err := scanReadingStatus(r.pool.QueryRow(ctx, query,
		e.Status,
		e.StartedDate,
		e.FinishedDate,
		e.CurrentPage,
		e.UserID,
		e.BookID,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create readingstatus: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*ReadingStatus, error) {
	e, err := scanReadingStatus(r.pool.QueryRow(ctx, `SELECT `+readingstatusColumns+` FROM reading_statuses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get readingstatus by id: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]ReadingStatus, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + readingstatusColumns + ` FROM reading_statuses`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading_statuses: %w", err)
	}
	defer rows.Close()

	var statuses []ReadingStatus
	for rows.Next() {
		e, err := scanReadingStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan readingstatus: %w", err)
		}
		statuses = append(statuses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reading_statuses: %w", err)
	}

	return statuses, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM reading_statuses`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count reading_statuses: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *ReadingStatus) (*ReadingStatus, error) {
	query := `
        UPDATE reading_statuses
        SET status = $1,
            started_date = $2,
            finished_date = $3,
            current_page = $4,
            user_id = $5,
            book_id = $6,
            updated_at = NOW()
        WHERE id = $7
        RETURNING ` + readingstatusColumns

	updated, err := scanReadingStatus(r.pool.QueryRow(ctx, query,
		e.Status,
		e.StartedDate,
		e.FinishedDate,
		e.CurrentPage,
		e.UserID,
		e.BookID,
		e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update readingstatus: %w", err)
	}

	return updated, nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM reading_statuses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete readingstatus: %w", err)
	}

	return nil
}
