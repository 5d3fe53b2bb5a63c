package book

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

// Repository is the data access contract for books.
type Repository interface {
	Create(ctx context.Context, b *Book) (*Book, error)
	GetByID(ctx context.Context, id int64) (*Book, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Book, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Update(ctx context.Context, b *Book) (*Book, error)
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
	bookCacheKeyPrefix = "book:"
	cacheTTL           = 15 * time.Minute
)

const bookColumns = `id, isbn, title, description, cover_image_url, page_count,
	publication_date, language, average_rating, total_ratings, total_reviews,
	publisher_id, created_at, updated_at`

func scanBook(row pgx.Row) (*Book, error) {
	var b Book
	err := row.Scan(
		&b.ID,
		&b.ISBN,
		&b.Title,
		&b.Description,
		&b.CoverImageURL,
		&b.PageCount,
		&b.PublicationDate,
		&b.Language,
		&b.AverageRating,
		&b.TotalRatings,
		&b.TotalReviews,
		&b.PublisherID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "isbn") {
				return ErrDuplicateISBN
			}
		case "23503": // foreign_key_violation
			return ErrInvalidReference
		}
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, b *Book) (*Book, error) {
	query := `
        INSERT INTO books (isbn, title, description, cover_image_url, page_count,
            publication_date, language, publisher_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		b.ISBN,
		b.Title,
		b.Description,
		b.CoverImageURL,
		b.PageCount,
		b.PublicationDate,
		b.Language,
		b.PublisherID,
	))
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Book, error) {
	cacheKey := fmt.Sprintf("%s%d", bookCacheKeyPrefix, id)

	var cached Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Book, error) {
	where, args := criteria.Build(crit, 1)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + bookColumns + ` FROM books`)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + page.OrderBy())
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit(), page.Offset()))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context, crit *Criteria) (int64, error) {
	where, args := criteria.Build(crit, 1)

	query := `SELECT COUNT(*) FROM books`
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}

	return total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *Book) (*Book, error) {
	query := `
        UPDATE books
        SET isbn = $1,
            title = $2,
            description = $3,
            cover_image_url = $4,
            page_count = $5,
            publication_date = $6,
            language = $7,
            publisher_id = $8,
            updated_at = NOW()
        WHERE id = $9
        RETURNING ` + bookColumns

	updated, err := scanBook(r.pool.QueryRow(ctx, query,
		b.ISBN,
		b.Title,
		b.Description,
		b.CoverImageURL,
		b.PageCount,
		b.PublicationDate,
		b.Language,
		b.PublisherID,
		b.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", bookCacheKeyPrefix, b.ID))

	return updated, nil
}

// Delete removes the book; deleting an absent id is not an error, the
// outward contract is idempotent.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	r.cache.Delete(ctx, fmt.Sprintf("%s%d", bookCacheKeyPrefix, id))

	return nil
}
