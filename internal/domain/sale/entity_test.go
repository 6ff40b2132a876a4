package sale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale(t *testing.T) {
	tests := []struct {
		name       string
		customerID string
		employeeID string
		wantErr    error
	}{
		{
			name:       "venda válida",
			customerID: "c1",
			employeeID: "e1",
			wantErr:    nil,
		},
		{
			name:       "sem cliente",
			customerID: "",
			employeeID: "e1",
			wantErr:    ErrEmptyCustomer,
		},
		{
			name:       "sem funcionário",
			customerID: "c1",
			employeeID: "",
			wantErr:    ErrEmptyEmployee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSale(tt.customerID, tt.employeeID, time.Now())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, s.ID)
			assert.True(t, s.Total.IsZero())
		})
	}
}

func TestNewSaleDefaultsSaleDate(t *testing.T) {
	s, err := NewSale("c1", "e1", time.Time{})
	require.NoError(t, err)
	assert.False(t, s.SaleDate.IsZero())
}

func TestSaleItemSubtotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		want      string
	}{
		{"unitário", 1, "9.99", "9.99"},
		{"múltiplo", 3, "25.50", "76.50"},
		{"centavos exatos", 7, "0.10", "0.70"},
		{"preço zero", 5, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &SaleItem{
				Quantity:  tt.quantity,
				UnitPrice: decimal.RequireFromString(tt.unitPrice),
			}
			assert.True(t, item.Subtotal().Equal(decimal.RequireFromString(tt.want)),
				"subtotal %s != esperado %s", item.Subtotal(), tt.want)
		})
	}
}

func TestSaleItemValidate(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		wantErr   error
	}{
		{"item válido", 2, "10.00", nil},
		{"quantidade zero", 0, "10.00", ErrInvalidQuantity},
		{"quantidade negativa", -1, "10.00", ErrInvalidQuantity},
		{"preço negativo", 1, "-0.01", ErrNegativeUnitPrice},
		{"preço zero é aceito", 1, "0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &SaleItem{
				Quantity:  tt.quantity,
				UnitPrice: decimal.RequireFromString(tt.unitPrice),
			}
			err := item.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
