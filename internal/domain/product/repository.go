package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// List lista os produtos com paginação
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Update atualiza os dados cadastrais de um produto existente
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto
	Delete(ctx context.Context, id string) error

	// Count conta quantos produtos existem
	Count(ctx context.Context) (int, error)

	// Replenish soma quantidade ao estoque do produto (reposição administrativa)
	Replenish(ctx context.Context, id string, quantity int) error

	// SetHasImage marca se o produto possui imagens enviadas
	SetHasImage(ctx context.Context, id string, hasImage bool) error
}
