package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booker-backend/internal/shared/criteria"
)

type Repository interface {
	Create(ctx context.Context, e *Publisher) (*Publisher, error)
	GetByID(ctx context.Context, id int64) (*Publisher, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Publisher, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, e *Publisher) (*Publisher, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const publisherColumns = `id, name, website_url, logo_url, founded_date, created_at, updated_at`

func scanPublisher(row pgx.Row) (*Publisher, error) {
	var e Publisher
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.WebsiteURL,
		&e.LogoURL,
		&e.FoundedDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *postgresRepository) Create(ctx context.Context, e *Publisher) (*Publisher, error) {
	query := `
        INSERT INTO publishers (name, website_url, logo_url, founded_date)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + publisherColumns

	created, err := scanPublisher(r.pool.QueryRow(ctx, query,
		e.Name,
		e.WebsiteURL,
		e.LogoURL,
		e.FoundedDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Publisher, error) {
	e, err := scanPublisher(r.pool.QueryRow(ctx, `SELECT `+publisherColumns+` FROM publishers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get publisher by id: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Publisher, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + publisherColumns + ` FROM publishers`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query publishers: %w", err)
	}
	defer rows.Close()

	var publishers []Publisher
	for rows.Next() {
		e, err := scanPublisher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publisher: %w", err)
		}
		publishers = append(publishers, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating publishers: %w", err)
	}

	return publishers, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM publishers`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count publishers: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *Publisher) (*Publisher, error) {
	query := `
        UPDATE publishers
        SET name = $1,
            website_url = $2,
            logo_url = $3,
            founded_date = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING ` + publisherColumns

	updated, err := scanPublisher(r.pool.QueryRow(ctx, query,
		e.Name,
		e.WebsiteURL,
		e.LogoURL,
		e.FoundedDate,
		e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}

	return updated, nil
}

// Delete removes the row; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete publisher: %w", err)
	}

	return nil
}
