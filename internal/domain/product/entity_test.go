package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name    string
		pname   string
		price   string
		stock   int
		wantErr error
	}{
		{"produto válido", "Pastilha de freio", "89.90", 10, nil},
		{"estoque zero é aceito", "Vela de ignição", "15.00", 0, nil},
		{"nome vazio", "", "10.00", 1, ErrEmptyName},
		{"preço negativo", "Correia", "-1.00", 1, ErrNegativePrice},
		{"estoque negativo", "Correia", "10.00", -1, ErrNegativeStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.pname, "", decimal.RequireFromString(tt.price), tt.stock)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, p.ID)
			assert.Equal(t, tt.stock, p.Stock)
			assert.False(t, p.HasImage)
		})
	}
}

func TestProductUpdateDoesNotTouchStock(t *testing.T) {
	p, err := NewProduct("Amortecedor", "dianteiro", decimal.RequireFromString("250.00"), 6)
	require.NoError(t, err)

	require.NoError(t, p.Update("Amortecedor novo", "traseiro", decimal.RequireFromString("199.90")))

	assert.Equal(t, "Amortecedor novo", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("199.90")))
	assert.Equal(t, 6, p.Stock)
}

func TestProductUpdateValidation(t *testing.T) {
	p, err := NewProduct("Amortecedor", "", decimal.RequireFromString("250.00"), 6)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Update("", "", decimal.RequireFromString("10.00")), ErrEmptyName)
	assert.ErrorIs(t, p.Update("Amortecedor", "", decimal.RequireFromString("-10.00")), ErrNegativePrice)
}
