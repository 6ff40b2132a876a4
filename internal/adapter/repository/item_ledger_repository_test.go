package repository

import (
	"context"
	"log"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/customer"
	"github.com/joaovitorvlb/api-autopeck/internal/domain/employee"
	"github.com/joaovitorvlb/api-autopeck/internal/domain/product"
	"github.com/joaovitorvlb/api-autopeck/internal/domain/sale"
)

func TestItemLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("teste de integração com container; pulado em -short")
	}
	suite.Run(t, new(ItemLedgerSuite))
}

// ItemLedgerSuite sobe um PostgreSQL em container e exercita o ledger de
// itens contra o schema real.
type ItemLedgerSuite struct {
	suite.Suite
	pool        *pgxpool.Pool
	pgContainer *postgres.PostgresContainer

	customerRepo customer.Repository
	employeeRepo employee.Repository
	productRepo  product.Repository
	saleRepo     sale.Repository
	ledger       sale.ItemLedger
}

// SetupSuite inicia o container com o schema das migrações aplicado
func (s *ItemLedgerSuite) SetupSuite() {
	ctx := context.Background()

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(b), "../../..")
	schemaPath := filepath.Join(projectRoot, "migrations", "000001_init_schema.up.sql")

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpassword"),
		postgres.WithInitScripts(schemaPath),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("não foi possível iniciar o container postgres: %s", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("não foi possível obter a string de conexão: %s", err)
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Fatalf("não foi possível analisar a configuração do pool: %s", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		log.Fatalf("não foi possível conectar ao banco de teste: %s", err)
	}

	s.pool = pool
	s.pgContainer = container

	s.customerRepo = NewCustomerRepository(pool)
	s.employeeRepo = NewEmployeeRepository(pool)
	s.productRepo = NewProductRepository(pool)
	s.saleRepo = NewSaleRepository(pool)
	s.ledger = NewItemLedgerRepository(pool)
}

// TearDownSuite encerra o container
func (s *ItemLedgerSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			log.Fatalf("falha ao encerrar o container postgres: %s", err)
		}
	}
}

// SetupTest limpa as tabelas entre os testes
func (s *ItemLedgerSuite) SetupTest() {
	ctx := context.Background()
	for _, table := range []string{"sale_items", "sales", "products", "customers", "employees"} {
		_, err := s.pool.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE")
		s.Require().NoError(err, "falha ao truncar tabela %s", table)
	}
}

// createProduct insere um produto com o estoque informado
func (s *ItemLedgerSuite) createProduct(price string, stock int) *product.Product {
	p, err := product.NewProduct("Filtro de óleo", "", decimal.RequireFromString(price), stock)
	s.Require().NoError(err)
	s.Require().NoError(s.productRepo.Create(context.Background(), p))
	return p
}

// createSale insere uma venda vazia com cliente e funcionário válidos
func (s *ItemLedgerSuite) createSale() *sale.Sale {
	ctx := context.Background()

	c, err := customer.NewCustomer("Maria Souza", "maria@example.com", "", "")
	s.Require().NoError(err)
	s.Require().NoError(s.customerRepo.Create(ctx, c))

	e, err := employee.NewEmployee("Carlos Lima", "vendedor", decimal.NewFromInt(2500), nil)
	s.Require().NoError(err)
	s.Require().NoError(s.employeeRepo.Create(ctx, e))

	v, err := sale.NewSale(c.ID, e.ID, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.saleRepo.Create(ctx, v))
	return v
}

// stockOf lê o estoque atual do produto
func (s *ItemLedgerSuite) stockOf(productID string) int {
	var stock int
	err := s.pool.QueryRow(context.Background(),
		"SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	s.Require().NoError(err)
	return stock
}

// totalOf lê o total atual da venda
func (s *ItemLedgerSuite) totalOf(saleID string) decimal.Decimal {
	var total decimal.Decimal
	err := s.pool.QueryRow(context.Background(),
		"SELECT total FROM sales WHERE id = $1", saleID).Scan(&total)
	s.Require().NoError(err)
	return total
}

func (s *ItemLedgerSuite) TestAddItemDebitsStockAndUpdatesTotal() {
	ctx := context.Background()
	p := s.createProduct("25.50", 10)
	v := s.createSale()

	itemID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 3, p.Price, nil)
	s.Require().NoError(err)
	s.Require().Greater(itemID, int64(0))

	s.Equal(7, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).Equal(decimal.RequireFromString("76.50")))

	item, err := s.saleRepo.FindItemByID(ctx, itemID)
	s.Require().NoError(err)
	s.Equal(3, item.Quantity)
	s.True(item.UnitPrice.Equal(p.Price))
}

func (s *ItemLedgerSuite) TestAddItemWithExplicitID() {
	ctx := context.Background()
	p := s.createProduct("10.00", 5)
	v := s.createSale()

	wanted := int64(42)
	itemID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 1, p.Price, &wanted)
	s.Require().NoError(err)
	s.Equal(wanted, itemID)

	// o identity continua gerando ids para inserções seguintes
	nextID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 1, p.Price, nil)
	s.Require().NoError(err)
	s.NotEqual(wanted, nextID)
}

func (s *ItemLedgerSuite) TestAddItemExactStockBoundary() {
	ctx := context.Background()
	p := s.createProduct("5.00", 4)
	v := s.createSale()

	// quantidade igual ao estoque é aceita e zera o estoque
	_, err := s.ledger.AddItem(ctx, v.ID, p.ID, 4, p.Price, nil)
	s.Require().NoError(err)
	s.Equal(0, s.stockOf(p.ID))

	// com estoque zerado, qualquer inclusão falha sem efeitos parciais
	_, err = s.ledger.AddItem(ctx, v.ID, p.ID, 1, p.Price, nil)
	s.Require().ErrorIs(err, ErrInsufficientStock)
	s.Equal(0, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).Equal(decimal.RequireFromString("20.00")))
}

func (s *ItemLedgerSuite) TestAddItemInsufficientStockLeavesNoTrace() {
	ctx := context.Background()
	p := s.createProduct("9.99", 2)
	v := s.createSale()

	_, err := s.ledger.AddItem(ctx, v.ID, p.ID, 3, p.Price, nil)
	s.Require().ErrorIs(err, ErrInsufficientStock)

	s.Equal(2, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).IsZero())

	items, err := s.saleRepo.ListItemsBySale(ctx, v.ID)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ItemLedgerSuite) TestAddItemInvalidInput() {
	ctx := context.Background()
	p := s.createProduct("9.99", 10)
	v := s.createSale()

	_, err := s.ledger.AddItem(ctx, v.ID, p.ID, 0, p.Price, nil)
	s.Require().ErrorIs(err, sale.ErrInvalidQuantity)

	_, err = s.ledger.AddItem(ctx, v.ID, p.ID, 1, decimal.RequireFromString("-1"), nil)
	s.Require().ErrorIs(err, sale.ErrNegativeUnitPrice)

	_, err = s.ledger.AddItem(ctx, v.ID, "00000000-0000-0000-0000-000000000000", 1, p.Price, nil)
	s.Require().ErrorIs(err, ErrProductNotFound)
}

func (s *ItemLedgerSuite) TestUpdateQuantityIncreaseChecksOnlyDelta() {
	ctx := context.Background()
	p := s.createProduct("10.00", 5)
	v := s.createSale()

	itemID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 3, p.Price, nil)
	s.Require().NoError(err)
	s.Equal(2, s.stockOf(p.ID))

	// aumentar de 3 para 5 consome delta 2; só o delta é verificado
	s.Require().NoError(s.ledger.UpdateItemQuantity(ctx, itemID, 5))
	s.Equal(0, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).Equal(decimal.RequireFromString("50.00")))

	// aumentar além do delta disponível falha sem efeitos parciais
	err = s.ledger.UpdateItemQuantity(ctx, itemID, 6)
	s.Require().ErrorIs(err, ErrInsufficientStock)
	s.Equal(0, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).Equal(decimal.RequireFromString("50.00")))
}

func (s *ItemLedgerSuite) TestUpdateQuantityDecreaseNeverRejected() {
	ctx := context.Background()
	p := s.createProduct("10.00", 5)
	v := s.createSale()

	itemID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 5, p.Price, nil)
	s.Require().NoError(err)
	s.Equal(0, s.stockOf(p.ID))

	// redução devolve a diferença mesmo com estoque zerado
	s.Require().NoError(s.ledger.UpdateItemQuantity(ctx, itemID, 2))
	s.Equal(3, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).Equal(decimal.RequireFromString("20.00")))
}

func (s *ItemLedgerSuite) TestUpdateQuantityNoOp() {
	ctx := context.Background()
	p := s.createProduct("10.00", 5)
	v := s.createSale()

	itemID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 2, p.Price, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.UpdateItemQuantity(ctx, itemID, 2))
	s.Equal(3, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).Equal(decimal.RequireFromString("20.00")))
}

func (s *ItemLedgerSuite) TestUpdateQuantityValidation() {
	ctx := context.Background()

	s.Require().ErrorIs(s.ledger.UpdateItemQuantity(ctx, 1, 0), sale.ErrInvalidQuantity)
	s.Require().ErrorIs(s.ledger.UpdateItemQuantity(ctx, 1, -2), sale.ErrInvalidQuantity)
	s.Require().ErrorIs(s.ledger.UpdateItemQuantity(ctx, 999, 1), ErrSaleItemNotFound)
}

func (s *ItemLedgerSuite) TestRemoveItemRestoresStockAndTotal() {
	ctx := context.Background()
	p := s.createProduct("12.34", 8)
	v := s.createSale()

	itemID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 5, p.Price, nil)
	s.Require().NoError(err)
	s.Equal(3, s.stockOf(p.ID))

	s.Require().NoError(s.ledger.RemoveItem(ctx, itemID))
	s.Equal(8, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).IsZero())

	_, err = s.saleRepo.FindItemByID(ctx, itemID)
	s.Require().ErrorIs(err, ErrSaleItemNotFound)
}

func (s *ItemLedgerSuite) TestRemoveItemNotFound() {
	s.Require().ErrorIs(s.ledger.RemoveItem(context.Background(), 999), ErrSaleItemNotFound)
}

func (s *ItemLedgerSuite) TestDecreaseThenRemoveRoundTrip() {
	ctx := context.Background()
	p := s.createProduct("7.00", 10)
	v := s.createSale()

	itemID, err := s.ledger.AddItem(ctx, v.ID, p.ID, 6, p.Price, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.UpdateItemQuantity(ctx, itemID, 4))
	s.Require().NoError(s.ledger.RemoveItem(ctx, itemID))

	// depois do ciclo completo a venda e o estoque voltam ao estado inicial
	s.Equal(10, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).IsZero())
}

func (s *ItemLedgerSuite) TestConcurrentAddItemsSerializeOnStock() {
	ctx := context.Background()
	p := s.createProduct("10.00", 5)
	v := s.createSale()

	// duas inclusões concorrentes de 3 unidades disputam 5 em estoque: o lock
	// de linha serializa, exatamente uma entra
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ledger.AddItem(ctx, v.ID, p.ID, 3, p.Price, nil)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			s.Require().ErrorIs(err, ErrInsufficientStock)
			rejected++
		}
	}

	s.Equal(1, succeeded)
	s.Equal(1, rejected)
	s.Equal(2, s.stockOf(p.ID))
	s.True(s.totalOf(v.ID).Equal(decimal.RequireFromString("30.00")))

	items, err := s.saleRepo.ListItemsBySale(ctx, v.ID)
	s.Require().NoError(err)
	s.Len(items, 1)
}
