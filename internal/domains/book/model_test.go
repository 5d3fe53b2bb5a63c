package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		ISBN:  "9780441013593",
		Title: "Dune",
	}
}

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestRequestValidate_MissingISBN(t *testing.T) {
	req := validRequest()
	req.ISBN = ""

	assert.Error(t, req.Validate())
}

func TestRequestValidate_ShortISBN(t *testing.T) {
	req := validRequest()
	req.ISBN = "123"

	assert.Error(t, req.Validate())
}

func TestRequestValidate_MissingTitle(t *testing.T) {
	req := validRequest()
	req.Title = ""

	assert.Error(t, req.Validate())
}

func TestRequestValidate_ZeroPageCount(t *testing.T) {
	req := validRequest()
	zero := 0
	req.PageCount = &zero

	assert.Error(t, req.Validate())
}

func TestToEntity_AggregatesStayZero(t *testing.T) {
	req := validRequest()

	b := req.ToEntity()

	assert.Equal(t, int64(0), b.ID)
	assert.False(t, b.AverageRating.Valid)
	assert.Zero(t, b.TotalRatings)
	assert.Zero(t, b.TotalReviews)
}

func TestApply_MergesOnlyProvidedFields(t *testing.T) {
	desc := "a desert planet"
	lang := "en"
	b := &Book{
		ISBN:        "9780441013593",
		Title:       "Dune",
		Description: &desc,
		Language:    &lang,
	}

	newTitle := "Dune Messiah"
	b.Apply(&Patch{Title: &newTitle})

	assert.Equal(t, "Dune Messiah", b.Title)
	assert.Equal(t, "9780441013593", b.ISBN)
	require.NotNil(t, b.Description)
	assert.Equal(t, "a desert planet", *b.Description)
	require.NotNil(t, b.Language)
	assert.Equal(t, "en", *b.Language)
}

func TestApply_EmptyPatchChangesNothing(t *testing.T) {
	b := &Book{ISBN: "9780441013593", Title: "Dune"}
	before := *b

	b.Apply(&Patch{})

	assert.Equal(t, before, *b)
}
