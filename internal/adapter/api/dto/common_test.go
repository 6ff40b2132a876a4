package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"valores normais", 2, 20, 2, 20},
		{"página menor que 1", 0, 10, 1, 10},
		{"tamanho menor que 1", 1, 0, 1, 10},
		{"tamanho acima do limite", 1, 500, 1, 100},
		{"negativos", -3, -5, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPagination(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.PageSize)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, GetPagination(1, 10).Offset())
	assert.Equal(t, 10, GetPagination(2, 10).Offset())
	assert.Equal(t, 40, GetPagination(3, 20).Offset())
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		want  int
	}{
		{"divisão exata", 100, 10, 10},
		{"com resto", 101, 10, 11},
		{"nenhum registro", 0, 10, 1},
		{"tamanho inválido", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateTotalPages(tt.total, tt.size))
		})
	}
}
