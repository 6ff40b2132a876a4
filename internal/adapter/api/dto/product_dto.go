package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/product"
)

// ProductRequest representa a requisição de criação de produto
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
}

// ProductUpdateRequest representa a requisição de atualização de produto.
// O estoque não é atualizável por aqui: mudanças de estoque passam pelo
// ledger de itens ou pela reposição.
type ProductUpdateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// ProductReplenishRequest representa a requisição de reposição de estoque
type ProductReplenishRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Stock       int               `json:"stock"`
	ImageURLs   map[string]string `json:"image_urls,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"total_pages"`
}

// ProductImagesResponse representa a resposta de imagens de um produto
type ProductImagesResponse struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	Available   int               `json:"available"`
	URLs        map[string]string `json:"urls,omitempty"`
}

// ToProductResponse converte um produto do domínio para a resposta
func ToProductResponse(p *product.Product, imageURLs map[string]string) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURLs:   imageURLs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductListResponse converte uma página de produtos para a resposta de lista
func ToProductListResponse(products []*product.Product, total, page, size int) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductResponse(p, nil))
	}

	return ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
