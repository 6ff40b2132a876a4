package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrNegativePrice = errors.New("preço não pode ser negativo")
	ErrNegativeStock = errors.New("estoque não pode ser negativo")
)

// Product representa um produto do catálogo.
// O estoque reflete as quantidades reservadas por itens de venda e só é
// alterado pelo ledger de itens ou pela reposição explícita de estoque.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	HasImage    bool            `json:"has_image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProduct cria um novo produto
func NewProduct(name, description string, price decimal.Decimal, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	now := time.Now()
	return &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update atualiza os dados cadastrais do produto. O estoque não é alterado
// aqui: alterações de estoque passam pelo ledger ou pela reposição.
func (p *Product) Update(name, description string, price decimal.Decimal) error {
	if name == "" {
		return ErrEmptyName
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.UpdatedAt = time.Now()

	return nil
}
