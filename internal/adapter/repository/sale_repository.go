package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/sale"
)

// Erros específicos do repositório
var (
	ErrSaleNotFound = errors.New("venda não encontrada")
	ErrSaleHasItems = errors.New("venda ainda possui itens")
)

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{
		db: db,
	}
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sales (id, customer_id, employee_id, sale_date, total, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.CustomerID, s.EmployeeID, s.SaleDate, s.Total, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	var s sale.Sale

	err := r.db.QueryRow(ctx,
		`SELECT id, customer_id, employee_id, sale_date, total, created_at, updated_at
		 FROM sales WHERE id = $1`,
		id).Scan(&s.ID, &s.CustomerID, &s.EmployeeID, &s.SaleDate, &s.Total, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	items, err := r.ListItemsBySale(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items

	return &s, nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_id, employee_id, sale_date, total, created_at, updated_at
		 FROM sales
		 ORDER BY sale_date DESC, created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale
	for rows.Next() {
		var s sale.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.EmployeeID, &s.SaleDate, &s.Total, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer vendas: %w", err)
	}

	return sales, nil
}

// Delete implementa sale.Repository.Delete. A venda precisa estar sem itens:
// remover itens passa pelo ledger para devolver o estoque.
func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	var itemCount int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM sale_items WHERE sale_id = $1", id).Scan(&itemCount)
	if err != nil {
		return fmt.Errorf("erro ao verificar itens da venda: %w", err)
	}
	if itemCount > 0 {
		return ErrSaleHasItems
	}

	tag, err := r.db.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// Count implementa sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	return count, nil
}

// FindItemByID implementa sale.Repository.FindItemByID
func (r *SaleRepository) FindItemByID(ctx context.Context, itemID int64) (*sale.SaleItem, error) {
	var i sale.SaleItem

	err := r.db.QueryRow(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price
		 FROM sale_items WHERE id = $1`,
		itemID).Scan(&i.ID, &i.SaleID, &i.ProductID, &i.Quantity, &i.UnitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleItemNotFound
		}
		return nil, fmt.Errorf("erro ao buscar item de venda: %w", err)
	}

	return &i, nil
}

// ListItems implementa sale.Repository.ListItems
func (r *SaleRepository) ListItems(ctx context.Context) ([]*sale.SaleItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price
		 FROM sale_items
		 ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens de venda: %w", err)
	}
	defer rows.Close()

	return scanSaleItemRows(rows)
}

// ListItemsBySale implementa sale.Repository.ListItemsBySale
func (r *SaleRepository) ListItemsBySale(ctx context.Context, saleID string) ([]*sale.SaleItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price
		 FROM sale_items
		 WHERE sale_id = $1
		 ORDER BY id ASC`,
		saleID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens da venda: %w", err)
	}
	defer rows.Close()

	return scanSaleItemRows(rows)
}

// scanSaleItemRows converte as linhas do cursor em itens de venda
func scanSaleItemRows(rows pgx.Rows) ([]*sale.SaleItem, error) {
	var items []*sale.SaleItem
	for rows.Next() {
		var i sale.SaleItem
		if err := rows.Scan(&i.ID, &i.SaleID, &i.ProductID, &i.Quantity, &i.UnitPrice); err != nil {
			return nil, fmt.Errorf("erro ao ler item de venda: %w", err)
		}
		items = append(items, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer itens de venda: %w", err)
	}

	return items, nil
}
