package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/sale"
	"github.com/joaovitorvlb/api-autopeck/internal/infrastructure/database"
)

// Erros específicos do ledger de itens de venda
var (
	ErrSaleItemNotFound  = errors.New("item de venda não encontrado")
	ErrInsufficientStock = errors.New("estoque insuficiente")
)

// ItemLedgerRepository implementa sale.ItemLedger sobre transações pgx.
// Cada operação roda em uma única transação e trava as linhas de produto e/ou
// item com SELECT ... FOR UPDATE antes de decidir: duas operações concorrentes
// sobre o mesmo produto são serializadas pelo lock de linha, então a sequência
// verifica-estoque-e-debita nunca sofre lost update.
type ItemLedgerRepository struct {
	db *pgxpool.Pool
}

// NewItemLedgerRepository cria uma nova instância de ItemLedgerRepository
func NewItemLedgerRepository(db *pgxpool.Pool) sale.ItemLedger {
	return &ItemLedgerRepository{
		db: db,
	}
}

// AddItem implementa sale.ItemLedger.AddItem
func (r *ItemLedgerRepository) AddItem(ctx context.Context, saleID, productID string, quantity int, unitPrice decimal.Decimal, itemID *int64) (int64, error) {
	item := &sale.SaleItem{SaleID: saleID, ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}
	if err := item.Validate(); err != nil {
		return 0, err
	}

	var newItemID int64
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		// 1) travar o produto e verificar o estoque
		var stock int
		err := tx.QueryRow(ctx,
			"SELECT stock FROM products WHERE id = $1 FOR UPDATE",
			productID).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrProductNotFound
			}
			return fmt.Errorf("erro ao travar produto: %w", err)
		}

		if stock < quantity {
			return fmt.Errorf("%w: produto %s possui %d unidades", ErrInsufficientStock, productID, stock)
		}

		// 2) inserir o item; sem id explícito o identity da tabela gera o próximo
		if itemID != nil {
			err = tx.QueryRow(ctx,
				`INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				*itemID, saleID, productID, quantity, unitPrice).Scan(&newItemID)
		} else {
			err = tx.QueryRow(ctx,
				`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price)
				 VALUES ($1, $2, $3, $4) RETURNING id`,
				saleID, productID, quantity, unitPrice).Scan(&newItemID)
		}
		if err != nil {
			return fmt.Errorf("erro ao inserir item de venda: %w", err)
		}

		// 3) debitar o estoque do produto
		_, err = tx.Exec(ctx,
			"UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2",
			quantity, productID)
		if err != nil {
			return fmt.Errorf("erro ao debitar estoque: %w", err)
		}

		// 4) somar o subtotal ao total da venda
		_, err = tx.Exec(ctx,
			"UPDATE sales SET total = COALESCE(total, 0) + $1, updated_at = NOW() WHERE id = $2",
			item.Subtotal(), saleID)
		if err != nil {
			return fmt.Errorf("erro ao atualizar total da venda: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newItemID, nil
}

// UpdateItemQuantity implementa sale.ItemLedger.UpdateItemQuantity
func (r *ItemLedgerRepository) UpdateItemQuantity(ctx context.Context, itemID int64, newQuantity int) error {
	if newQuantity <= 0 {
		return sale.ErrInvalidQuantity
	}

	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		// travar a linha do item e ler o estado atual
		var saleID, productID string
		var quantity int
		var unitPrice decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT sale_id, product_id, quantity, unit_price
			 FROM sale_items WHERE id = $1 FOR UPDATE`,
			itemID).Scan(&saleID, &productID, &quantity, &unitPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSaleItemNotFound
			}
			return fmt.Errorf("erro ao travar item de venda: %w", err)
		}

		delta := newQuantity - quantity
		if delta == 0 {
			return nil
		}

		// aumentos consomem estoque: travar o produto e verificar; reduções
		// nunca são rejeitadas
		if delta > 0 {
			var stock int
			err := tx.QueryRow(ctx,
				"SELECT stock FROM products WHERE id = $1 FOR UPDATE",
				productID).Scan(&stock)
			if err != nil {
				return fmt.Errorf("erro ao travar produto: %w", err)
			}
			if stock < delta {
				return fmt.Errorf("%w: produto %s possui %d unidades", ErrInsufficientStock, productID, stock)
			}
		}

		_, err = tx.Exec(ctx,
			"UPDATE sale_items SET quantity = $1 WHERE id = $2",
			newQuantity, itemID)
		if err != nil {
			return fmt.Errorf("erro ao atualizar quantidade do item: %w", err)
		}

		// delta positivo debita, negativo devolve
		_, err = tx.Exec(ctx,
			"UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2",
			delta, productID)
		if err != nil {
			return fmt.Errorf("erro ao ajustar estoque: %w", err)
		}

		_, err = tx.Exec(ctx,
			"UPDATE sales SET total = COALESCE(total, 0) + $1, updated_at = NOW() WHERE id = $2",
			unitPrice.Mul(decimal.NewFromInt(int64(delta))), saleID)
		if err != nil {
			return fmt.Errorf("erro ao ajustar total da venda: %w", err)
		}

		return nil
	})
}

// RemoveItem implementa sale.ItemLedger.RemoveItem
func (r *ItemLedgerRepository) RemoveItem(ctx context.Context, itemID int64) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var saleID, productID string
		var quantity int
		var unitPrice decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT sale_id, product_id, quantity, unit_price
			 FROM sale_items WHERE id = $1 FOR UPDATE`,
			itemID).Scan(&saleID, &productID, &quantity, &unitPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSaleItemNotFound
			}
			return fmt.Errorf("erro ao travar item de venda: %w", err)
		}

		_, err = tx.Exec(ctx, "DELETE FROM sale_items WHERE id = $1", itemID)
		if err != nil {
			return fmt.Errorf("erro ao excluir item de venda: %w", err)
		}

		// devolver o estoque reservado
		_, err = tx.Exec(ctx,
			"UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2",
			quantity, productID)
		if err != nil {
			return fmt.Errorf("erro ao devolver estoque: %w", err)
		}

		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		_, err = tx.Exec(ctx,
			"UPDATE sales SET total = COALESCE(total, 0) - $1, updated_at = NOW() WHERE id = $2",
			subtotal, saleID)
		if err != nil {
			return fmt.Errorf("erro ao ajustar total da venda: %w", err)
		}

		return nil
	})
}
