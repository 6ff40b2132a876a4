package sale

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create cria uma nova venda (sem itens; itens entram pelo ItemLedger)
	Create(ctx context.Context, s *Sale) error

	// FindByID busca uma venda pelo ID, com seus itens
	FindByID(ctx context.Context, id string) (*Sale, error)

	// List lista as vendas com paginação
	List(ctx context.Context, limit, offset int) ([]*Sale, error)

	// Delete remove uma venda já sem itens
	Delete(ctx context.Context, id string) error

	// Count conta quantas vendas existem
	Count(ctx context.Context) (int, error)

	// FindItemByID busca um item de venda pelo ID
	FindItemByID(ctx context.Context, itemID int64) (*SaleItem, error)

	// ListItems lista todos os itens de venda
	ListItems(ctx context.Context) ([]*SaleItem, error)

	// ListItemsBySale lista os itens de uma venda
	ListItemsBySale(ctx context.Context, saleID string) ([]*SaleItem, error)
}

// ItemLedger mantém os invariantes entre itens de venda, estoque de produto e
// total da venda. Cada operação roda em exatamente uma transação com bloqueio
// de linha (SELECT ... FOR UPDATE): ou commita todos os efeitos, ou nenhum.
//
// Invariantes após cada operação:
//  1. estoque de todo produto >= 0
//  2. total da venda == soma de quantity × unit_price dos seus itens
//  3. cada item conta exatamente uma vez no total e uma vez no estoque
type ItemLedger interface {
	// AddItem insere um item na venda, debita o estoque do produto e soma o
	// subtotal ao total da venda. Se itemID for nil o banco gera o próximo id.
	// Retorna o id do item criado.
	AddItem(ctx context.Context, saleID, productID string, quantity int, unitPrice decimal.Decimal, itemID *int64) (int64, error)

	// UpdateItemQuantity ajusta a quantidade de um item, corrigindo estoque e
	// total pela diferença. Reduções de quantidade nunca são rejeitadas por
	// estoque; apenas aumentos verificam o estoque disponível.
	UpdateItemQuantity(ctx context.Context, itemID int64, newQuantity int) error

	// RemoveItem exclui o item, devolve a quantidade ao estoque e subtrai o
	// subtotal do total da venda.
	RemoveItem(ctx context.Context, itemID int64) error
}
