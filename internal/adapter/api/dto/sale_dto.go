package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/sale"
)

// SaleItemRequest representa um item na criação de venda ou na inclusão avulsa
type SaleItemRequest struct {
	ID        *int64           `json:"id"`
	ProductID string           `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SaleRequest representa a requisição de criação de venda
type SaleRequest struct {
	CustomerID string            `json:"customer_id" binding:"required"`
	EmployeeID string            `json:"employee_id" binding:"required"`
	SaleDate   *time.Time        `json:"sale_date"`
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemQuantityRequest representa a requisição de alteração de quantidade
type SaleItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// SaleItemResponse representa a resposta de item de venda
type SaleItemResponse struct {
	ID        int64           `json:"id"`
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse representa a resposta de venda
type SaleResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	EmployeeID string             `json:"employee_id"`
	SaleDate   time.Time          `json:"sale_date"`
	Total      decimal.Decimal    `json:"total"`
	Items      []SaleItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// SaleListResponse representa a resposta de lista de vendas
type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
}

// ToSaleItemResponse converte um item de venda do domínio para a resposta
func ToSaleItemResponse(i *sale.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		ID:        i.ID,
		SaleID:    i.SaleID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		Subtotal:  i.Subtotal(),
	}
}

// ToSaleItemResponses converte uma lista de itens de venda para a resposta
func ToSaleItemResponses(items []*sale.SaleItem) []SaleItemResponse {
	responses := make([]SaleItemResponse, 0, len(items))
	for _, i := range items {
		responses = append(responses, ToSaleItemResponse(i))
	}
	return responses
}

// ToSaleResponse converte uma venda do domínio para a resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	return SaleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		EmployeeID: s.EmployeeID,
		SaleDate:   s.SaleDate,
		Total:      s.Total,
		Items:      ToSaleItemResponses(s.Items),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ToSaleListResponse converte uma página de vendas para a resposta de lista
func ToSaleListResponse(sales []*sale.Sale, total, page, size int) SaleListResponse {
	items := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, ToSaleResponse(s))
	}

	return SaleListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
