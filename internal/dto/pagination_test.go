package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage_ClampsOutOfRangeValues(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = NormalizePage(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = NormalizePage(2, 500)
	assert.Equal(t, 2, page)
	assert.Equal(t, MaxPageSize, limit)
}

func TestNormalizePage_KeepsValidValues(t *testing.T) {
	page, limit := NormalizePage(3, 50)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)
}

func TestNewPagination_RoundsTotalPagesUp(t *testing.T) {
	p := NewPagination(1, 20, 47)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestNewPagination_LastPageHasNoNext(t *testing.T) {
	p := NewPagination(3, 20, 47)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestNewPagination_EmptyResult(t *testing.T) {
	p := NewPagination(1, 20, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestNewPagination_ExactMultiple(t *testing.T) {
	p := NewPagination(2, 20, 40)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNextPage)
}
