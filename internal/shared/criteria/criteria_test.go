package criteria

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCriteria struct {
	ID        LongFilter   `param:"id" db:"id"`
	Title     StringFilter `param:"title" db:"title"`
	PageCount IntFilter    `param:"page_count" db:"page_count"`
	Rating    FloatFilter  `param:"rating" db:"rating"`
	Active    BoolFilter   `param:"active" db:"active"`
	CreatedAt TimeFilter   `param:"created_at" db:"created_at"`
}

func TestBind_Equals(t *testing.T) {
	values := url.Values{
		"id.equals":    {"42"},
		"title.equals": {"Dune"},
	}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))

	require.NotNil(t, crit.ID.Equals)
	assert.Equal(t, int64(42), *crit.ID.Equals)
	require.NotNil(t, crit.Title.Equals)
	assert.Equal(t, "Dune", *crit.Title.Equals)
}

func TestBind_InCommaSeparated(t *testing.T) {
	values := url.Values{"id.in": {"1,2, 3"}}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))

	assert.Equal(t, []int64{1, 2, 3}, crit.ID.In)
}

func TestBind_InRepeatedParams(t *testing.T) {
	values := url.Values{"title.in": {"a", "b,c"}}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))

	assert.Equal(t, []string{"a", "b", "c"}, crit.Title.In)
}

func TestBind_RangeOperators(t *testing.T) {
	values := url.Values{
		"page_count.greaterThan":     {"100"},
		"page_count.lessThanOrEqual": {"500"},
		"rating.greaterThanOrEqual":  {"3.5"},
	}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))

	require.NotNil(t, crit.PageCount.GreaterThan)
	assert.Equal(t, 100, *crit.PageCount.GreaterThan)
	require.NotNil(t, crit.PageCount.LessThanOrEqual)
	assert.Equal(t, 500, *crit.PageCount.LessThanOrEqual)
	require.NotNil(t, crit.Rating.GreaterThanOrEqual)
	assert.Equal(t, 3.5, *crit.Rating.GreaterThanOrEqual)
}

func TestBind_Specified(t *testing.T) {
	values := url.Values{"title.specified": {"false"}}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))

	require.NotNil(t, crit.Title.Specified)
	assert.False(t, *crit.Title.Specified)
}

func TestBind_Time(t *testing.T) {
	values := url.Values{
		"created_at.greaterThan": {"2024-01-15"},
		"created_at.lessThan":    {"2024-06-01T12:00:00Z"},
	}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))

	require.NotNil(t, crit.CreatedAt.GreaterThan)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *crit.CreatedAt.GreaterThan)
	require.NotNil(t, crit.CreatedAt.LessThan)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), *crit.CreatedAt.LessThan)
}

func TestBind_BadValue(t *testing.T) {
	values := url.Values{"id.equals": {"abc"}}

	var crit testCriteria
	err := Bind(values, &crit)

	var bad *ErrBadFilter
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "id.equals", bad.Param)
	assert.Equal(t, "abc", bad.Value)
}

func TestBind_UnknownParamsIgnored(t *testing.T) {
	values := url.Values{
		"mystery.equals": {"x"},
		"id.frobnicate":  {"y"},
	}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))
	assert.Nil(t, crit.ID.Equals)
}

func TestBuild_Empty(t *testing.T) {
	var crit testCriteria

	where, args := Build(&crit, 1)

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuild_CombinesWithAnd(t *testing.T) {
	title := "go"
	min := 100
	crit := testCriteria{
		Title:     StringFilter{Contains: &title},
		PageCount: IntFilter{GreaterThan: &min},
	}

	where, args := Build(&crit, 1)

	assert.Equal(t, "title ILIKE $1 AND page_count > $2", where)
	assert.Equal(t, []any{"%go%", 100}, args)
}

func TestBuild_StartArgOffset(t *testing.T) {
	id := int64(7)
	crit := testCriteria{ID: LongFilter{Equals: &id}}

	where, args := Build(&crit, 3)

	assert.Equal(t, "id = $3", where)
	assert.Equal(t, []any{int64(7)}, args)
}

func TestBuild_InUsesAny(t *testing.T) {
	crit := testCriteria{ID: LongFilter{In: []int64{1, 2}}}

	where, args := Build(&crit, 1)

	assert.Equal(t, "id = ANY($1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, []int64{1, 2}, args[0])
}

func TestBind_BoolIn(t *testing.T) {
	values := url.Values{"active.in": {"true,false"}}

	var crit testCriteria
	require.NoError(t, Bind(values, &crit))

	assert.Equal(t, []bool{true, false}, crit.Active.In)
}

func TestBind_BoolInBadValue(t *testing.T) {
	values := url.Values{"active.in": {"maybe"}}

	var crit testCriteria
	err := Bind(values, &crit)

	var bad *ErrBadFilter
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "active.in", bad.Param)
}

func TestBuild_BoolInUsesAny(t *testing.T) {
	crit := testCriteria{Active: BoolFilter{In: []bool{true}}}

	where, args := Build(&crit, 1)

	assert.Equal(t, "active = ANY($1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, []bool{true}, args[0])
}

func TestBuild_Specified(t *testing.T) {
	yes, no := true, false
	crit := testCriteria{
		Title:  StringFilter{Specified: &no},
		Rating: FloatFilter{Specified: &yes},
	}

	where, args := Build(&crit, 1)

	assert.Equal(t, "title IS NULL AND rating IS NOT NULL", where)
	assert.Empty(t, args)
}

func TestBuild_EscapesLikeMetacharacters(t *testing.T) {
	needle := "50%_off"
	crit := testCriteria{Title: StringFilter{Contains: &needle}}

	_, args := Build(&crit, 1)

	require.Len(t, args, 1)
	assert.Equal(t, `%50\%\_off%`, args[0])
}

func TestParsePageable_Defaults(t *testing.T) {
	p, err := ParsePageable(url.Values{}, map[string]string{"id": "id"})

	require.NoError(t, err)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit())
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, "id ASC", p.OrderBy())
}

func TestParsePageable_SizeCapped(t *testing.T) {
	values := url.Values{"size": {"1000"}}

	p, err := ParsePageable(values, map[string]string{"id": "id"})

	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, p.Limit())
}

func TestParsePageable_SortWhitelist(t *testing.T) {
	sortable := map[string]string{"id": "id", "title": "title"}

	values := url.Values{"sort": {"title,desc", "id"}}
	p, err := ParsePageable(values, sortable)
	require.NoError(t, err)
	assert.Equal(t, "title DESC, id ASC", p.OrderBy())

	_, err = ParsePageable(url.Values{"sort": {"password"}}, sortable)
	var bad *ErrBadSort
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "password", bad.Field)
}

func TestParsePageable_Offset(t *testing.T) {
	values := url.Values{"page": {"3"}, "size": {"25"}}

	p, err := ParsePageable(values, map[string]string{"id": "id"})

	require.NoError(t, err)
	assert.Equal(t, 75, p.Offset())
}

func TestParsePageable_BadPage(t *testing.T) {
	_, err := ParsePageable(url.Values{"page": {"-1"}}, map[string]string{"id": "id"})

	var bad *ErrBadFilter
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "page", bad.Param)
}
