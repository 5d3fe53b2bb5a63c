package bookauthor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booker-backend/internal/shared/criteria"
	"booker-backend/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.ID != nil {
		response.BadRequest(c, "a new book-author link cannot already have an id")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid bookauthor payload", err)
		return
	}

	e, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, e)
}

func (h *Handler) List(c *gin.Context) {
	query := c.Request.URL.Query()

	var crit Criteria
	if err := criteria.Bind(query, &crit); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := criteria.ParsePageable(query, SortableColumns)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.service.List(c.Request.Context(), &crit, page)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	if items == nil {
		items = []BookAuthor{}
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Page:  page.Page,
		Size:  page.Limit(),
		Total: total,
	})
}

func (h *Handler) Count(c *gin.Context) {
	var crit Criteria
	if err := criteria.Bind(c.Request.URL.Query(), &crit); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	total, err := h.service.Count(c.Request.Context(), &crit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, total)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.ID == nil {
		response.BadRequest(c, "body id is required")
		return
	}
	if *req.ID != id {
		response.BadRequest(c, "path id does not match body id")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid bookauthor payload", err)
		return
	}

	e, err := h.service.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, e)
}

func (h *Handler) PartialUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if patch.ID == nil {
		response.BadRequest(c, "body id is required")
		return
	}
	if *patch.ID != id {
		response.BadRequest(c, "path id does not match body id")
		return
	}

	e, err := h.service.Patch(c.Request.Context(), id, &patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, e)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError maps service errors for mutating operations. A missing target
// row on update is a bad request, not a 404: the id came from the body.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrDuplicateLink):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrInvalidReference):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
