package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"booker-backend/internal/shared/middleware"
	"booker-backend/internal/shared/response"
	"booker-backend/pkg/container"
)

// crudHandler is the surface every entity handler exposes.
type crudHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Count(c *gin.Context)
	Update(c *gin.Context)
	PartialUpdate(c *gin.Context)
	Delete(c *gin.Context)
}

// registerCRUD wires the standard entity surface onto a route group. The
// write endpoints get writeMW prepended; reads stay as the group is.
func registerCRUD(rg *gin.RouterGroup, h crudHandler, writeMW ...gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/count", h.Count)
	rg.GET("/:id", h.Get)

	rg.POST("", append(writeMW, h.Create)...)
	rg.PUT("/:id", append(writeMW, h.Update)...)
	rg.PATCH("/:id", append(writeMW, h.PartialUpdate)...)
	rg.DELETE("/:id", append(writeMW, h.Delete)...)
}

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// PUT/PATCH on a collection path must come back as 405, not 404.
	router.HandleMethodNotAllowed = true

	router.NoMethod(func(ctx *gin.Context) {
		response.MethodNotAllowed(ctx, "method not allowed for this resource")
	})

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	router.GET("/health", func(ctx *gin.Context) {
		healthCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.DB.HealthCheck(healthCtx); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{"status": "up"})
	})

	auth := middleware.AuthMiddleware(c.JWT)
	admin := middleware.AdminMiddleware()

	api := router.Group("/api")

	// Authentication surface.
	api.POST("/register", c.UserHandler.Register)
	api.POST("/authenticate", c.UserHandler.Login)
	api.POST("/authenticate/refresh", c.UserHandler.Refresh)
	api.GET("/account", auth, c.UserHandler.Account)
	api.POST("/account/change-password", auth, c.UserHandler.ChangePassword)

	// Catalog entities: open reads, admin writes.
	registerCRUD(api.Group("/books"), c.BookHandler, auth, admin)
	registerCRUD(api.Group("/authors"), c.AuthorHandler, auth, admin)
	registerCRUD(api.Group("/publishers"), c.PublisherHandler, auth, admin)
	registerCRUD(api.Group("/genres"), c.GenreHandler, auth, admin)
	registerCRUD(api.Group("/tags"), c.TagHandler, auth, admin)
	registerCRUD(api.Group("/book-authors"), c.BookAuthorHandler, auth, admin)
	registerCRUD(api.Group("/book-genres"), c.BookGenreHandler, auth, admin)
	registerCRUD(api.Group("/book-tags"), c.BookTagHandler, auth, admin)

	// User-owned entities: every route needs an authenticated caller, the
	// handlers scope rows to the current user.
	registerCRUD(api.Group("/collections", auth), c.CollectionHandler)
	registerCRUD(api.Group("/reviews", auth), c.ReviewHandler)
	registerCRUD(api.Group("/ratings", auth), c.RatingHandler)
	registerCRUD(api.Group("/comments", auth), c.CommentHandler)
	registerCRUD(api.Group("/reading-statuses", auth), c.ReadingStatusHandler)
	registerCRUD(api.Group("/book-collections", auth), c.BookCollectionHandler)

	// Admin user management.
	registerCRUD(api.Group("/admin/users", auth, admin), c.UserHandler)

	return router
}
