package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"booker-backend/internal/config"
	"booker-backend/internal/domains/author"
	"booker-backend/internal/domains/book"
	"booker-backend/internal/domains/bookauthor"
	"booker-backend/internal/domains/bookcollection"
	"booker-backend/internal/domains/bookgenre"
	"booker-backend/internal/domains/booktag"
	"booker-backend/internal/domains/collection"
	"booker-backend/internal/domains/comment"
	"booker-backend/internal/domains/genre"
	"booker-backend/internal/domains/publisher"
	"booker-backend/internal/domains/rating"
	"booker-backend/internal/domains/readingstatus"
	"booker-backend/internal/domains/review"
	"booker-backend/internal/domains/tag"
	"booker-backend/internal/domains/user"
	infraCache "booker-backend/internal/infrastructure/cache"
	"booker-backend/internal/infrastructure/database"
	"booker-backend/internal/infrastructure/queue"
	"booker-backend/pkg/jwt"
)

// Container wires configuration, infrastructure and every domain together.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Cache *infraCache.RedisCache
	Queue *queue.Client
	JWT   *jwt.Manager

	BookHandler           *book.Handler
	AuthorHandler         *author.Handler
	PublisherHandler      *publisher.Handler
	GenreHandler          *genre.Handler
	TagHandler            *tag.Handler
	CollectionHandler     *collection.Handler
	ReviewHandler         *review.Handler
	RatingHandler         *rating.Handler
	CommentHandler        *comment.Handler
	ReadingStatusHandler  *readingstatus.Handler
	BookAuthorHandler     *bookauthor.Handler
	BookGenreHandler      *bookgenre.Handler
	BookTagHandler        *booktag.Handler
	BookCollectionHandler *bookcollection.Handler
	UserHandler           *user.Handler
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	queueClient := queue.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Queue:  queueClient,
		JWT:    jwtManager,
	}

	pool := db.Pool

	bookRepo := book.NewPostgresRepository(pool, redisCache)
	c.BookHandler = book.NewHandler(book.NewService(bookRepo))

	authorRepo := author.NewPostgresRepository(pool, redisCache)
	c.AuthorHandler = author.NewHandler(author.NewService(authorRepo))

	publisherRepo := publisher.NewPostgresRepository(pool)
	c.PublisherHandler = publisher.NewHandler(publisher.NewService(publisherRepo))

	genreRepo := genre.NewPostgresRepository(pool, redisCache)
	c.GenreHandler = genre.NewHandler(genre.NewService(genreRepo))

	tagRepo := tag.NewPostgresRepository(pool)
	c.TagHandler = tag.NewHandler(tag.NewService(tagRepo))

	collectionRepo := collection.NewPostgresRepository(pool)
	c.CollectionHandler = collection.NewHandler(collection.NewService(collectionRepo))

	reviewRepo := review.NewPostgresRepository(pool)
	c.ReviewHandler = review.NewHandler(review.NewService(reviewRepo, queueClient))

	ratingRepo := rating.NewPostgresRepository(pool)
	c.RatingHandler = rating.NewHandler(rating.NewService(ratingRepo, queueClient))

	commentRepo := comment.NewPostgresRepository(pool)
	c.CommentHandler = comment.NewHandler(comment.NewService(commentRepo))

	readingStatusRepo := readingstatus.NewPostgresRepository(pool)
	c.ReadingStatusHandler = readingstatus.NewHandler(readingstatus.NewService(readingStatusRepo))

	bookAuthorRepo := bookauthor.NewPostgresRepository(pool)
	c.BookAuthorHandler = bookauthor.NewHandler(bookauthor.NewService(bookAuthorRepo))

	bookGenreRepo := bookgenre.NewPostgresRepository(pool)
	c.BookGenreHandler = bookgenre.NewHandler(bookgenre.NewService(bookGenreRepo))

	bookTagRepo := booktag.NewPostgresRepository(pool)
	c.BookTagHandler = booktag.NewHandler(booktag.NewService(bookTagRepo))

	bookCollectionRepo := bookcollection.NewPostgresRepository(pool)
	c.BookCollectionHandler = bookcollection.NewHandler(
		bookcollection.NewService(bookCollectionRepo, collectionRepo, queueClient),
	)

	userRepo := user.NewPostgresRepository(pool)
	c.UserHandler = user.NewHandler(user.NewService(userRepo, jwtManager))

	log.Info().Msg("container initialized")

	return c, nil
}

// Cleanup releases every held connection. Safe to call once on shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close queue client")
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis cache")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("container cleaned up")
}
