package criteria

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Order is one sort instruction, already resolved to a column name.
type Order struct {
	Column string
	Desc   bool
}

// Pageable carries pagination and sorting for list queries. Page is 0-based.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// ErrBadSort reports a sort parameter referencing a non-sortable field.
type ErrBadSort struct {
	Field string
}

func (e *ErrBadSort) Error() string {
	return fmt.Sprintf("unknown sort field %q", e.Field)
}

// ParsePageable reads page, size and sort parameters. sortable maps exposed
// field names to column names; sort values outside the map are rejected.
// Sort syntax is sort=field,desc (repeatable); direction defaults to asc.
func ParsePageable(values url.Values, sortable map[string]string) (Pageable, error) {
	p := Pageable{Size: DefaultPageSize}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, &ErrBadFilter{Param: "page", Value: raw}
		}
		p.Page = n
	}

	if raw := values.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return p, &ErrBadFilter{Param: "size", Value: raw}
		}
		if n > MaxPageSize {
			n = MaxPageSize
		}
		p.Size = n
	}

	for _, raw := range values["sort"] {
		parts := strings.Split(raw, ",")
		field := strings.TrimSpace(parts[0])
		col, ok := sortable[field]
		if !ok {
			return p, &ErrBadSort{Field: field}
		}
		desc := len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
		p.Sort = append(p.Sort, Order{Column: col, Desc: desc})
	}

	return p, nil
}

// OrderBy renders the ORDER BY column list. Column names come from the
// sortable whitelist, never from raw input, so plain concatenation is safe.
func (p Pageable) OrderBy() string {
	if len(p.Sort) == 0 {
		return "id ASC"
	}
	parts := make([]string, len(p.Sort))
	for i, o := range p.Sort {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = o.Column + " " + dir
	}
	return strings.Join(parts, ", ")
}

func (p Pageable) Limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

func (p Pageable) Offset() int {
	return p.Page * p.Limit()
}
