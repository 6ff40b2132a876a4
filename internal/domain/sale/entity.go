package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomer     = errors.New("cliente da venda não informado")
	ErrEmptyEmployee     = errors.New("funcionário da venda não informado")
	ErrInvalidQuantity   = errors.New("quantidade deve ser maior que zero")
	ErrNegativeUnitPrice = errors.New("preço unitário não pode ser negativo")
)

// Sale representa uma venda.
// O total é derivado: sempre igual à soma de quantity × unit_price dos itens,
// mantido incrementalmente pelo ledger de itens.
type Sale struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	EmployeeID string          `json:"employee_id"`
	SaleDate   time.Time       `json:"sale_date"`
	Total      decimal.Decimal `json:"total"`
	Items      []*SaleItem     `json:"items,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SaleItem representa um item de venda: liga uma venda a um produto com a
// quantidade e o preço unitário congelado no momento da inclusão. Alterações
// posteriores no preço do produto não afetam itens existentes.
type SaleItem struct {
	ID        int64           `json:"id"`
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewSale cria uma nova venda
func NewSale(customerID, employeeID string, saleDate time.Time) (*Sale, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}
	if employeeID == "" {
		return nil, ErrEmptyEmployee
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	now := time.Now()
	return &Sale{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		EmployeeID: employeeID,
		SaleDate:   saleDate,
		Total:      decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Subtotal retorna a contribuição do item para o total da venda
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate verifica os campos do item antes de entrar no ledger
func (i *SaleItem) Validate() error {
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	return nil
}
