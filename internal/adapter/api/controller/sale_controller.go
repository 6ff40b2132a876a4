package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/dto"
	"github.com/joaovitorvlb/api-autopeck/internal/adapter/repository"
	customerdomain "github.com/joaovitorvlb/api-autopeck/internal/domain/customer"
	employeedomain "github.com/joaovitorvlb/api-autopeck/internal/domain/employee"
	productdomain "github.com/joaovitorvlb/api-autopeck/internal/domain/product"
	saledomain "github.com/joaovitorvlb/api-autopeck/internal/domain/sale"
	"github.com/joaovitorvlb/api-autopeck/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	saleRepo     saledomain.Repository
	ledger       saledomain.ItemLedger
	customerRepo customerdomain.Repository
	employeeRepo employeedomain.Repository
	productRepo  productdomain.Repository
	logger       logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(
	saleRepo saledomain.Repository,
	ledger saledomain.ItemLedger,
	customerRepo customerdomain.Repository,
	employeeRepo employeedomain.Repository,
	productRepo productdomain.Repository,
	logger logger.Logger,
) *SaleController {
	return &SaleController{
		saleRepo:     saleRepo,
		ledger:       ledger,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Create cria uma nova venda. Itens informados na requisição são aplicados um
// a um pelo ledger, debitando estoque e somando ao total. Se um item falhar
// (produto inexistente ou estoque insuficiente) a venda é desfeita por inteiro.
// @Summary Criar venda
// @Description Cria uma nova venda, opcionalmente com itens
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if _, err := c.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	if _, err := c.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "funcionário não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar funcionário", err.Error()))
		return
	}

	saleDate := time.Time{}
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	newSale, err := saledomain.NewSale(req.CustomerID, req.EmployeeID, saleDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar venda", err.Error()))
		return
	}

	if err := c.saleRepo.Create(ctx, newSale); err != nil {
		c.logger.Error("erro ao criar venda no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar venda", err.Error()))
		return
	}

	for _, item := range req.Items {
		unitPrice, err := c.resolveUnitPrice(ctx, item)
		if err == nil {
			_, err = c.ledger.AddItem(ctx, newSale.ID, item.ProductID, item.Quantity, unitPrice, item.ID)
		}
		if err != nil {
			c.rollbackSale(ctx, newSale.ID)
			c.respondLedgerError(ctx, err, "erro ao incluir item na venda")
			return
		}
	}

	created, err := c.saleRepo.FindByID(ctx, newSale.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda criada", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(created))
}

// Get retorna uma venda pelo ID, com seus itens
// @Summary Buscar venda
// @Description Retorna os dados de uma venda e seus itens
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	s, err := c.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// List retorna a lista de vendas
// @Summary Listar vendas
// @Description Retorna a lista de vendas paginada
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	sales, err := c.saleRepo.List(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	total, err := c.saleRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar vendas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, total, pagination.Page, pagination.PageSize))
}

// Delete remove uma venda. Os itens são removidos um a um pelo ledger antes da
// exclusão, devolvendo as quantidades ao estoque dos produtos.
// @Summary Excluir venda
// @Description Remove uma venda, devolvendo o estoque dos itens
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	items, err := c.saleRepo.ListItemsBySale(ctx, id)
	if err != nil {
		c.logger.Error("erro ao listar itens da venda", "sale_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar itens da venda", err.Error()))
		return
	}

	for _, item := range items {
		if err := c.ledger.RemoveItem(ctx, item.ID); err != nil {
			c.logger.Error("erro ao remover item da venda", "item_id", item.ID, "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover itens da venda", err.Error()))
			return
		}
	}

	if err := c.saleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("venda excluída com sucesso", nil))
}

// resolveUnitPrice retorna o preço unitário do item: o informado na requisição
// ou, na ausência, o preço atual do produto (congelado no item a partir daqui).
func (c *SaleController) resolveUnitPrice(ctx *gin.Context, item dto.SaleItemRequest) (decimal.Decimal, error) {
	if item.UnitPrice != nil {
		return *item.UnitPrice, nil
	}

	p, err := c.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Price, nil
}

// rollbackSale desfaz uma venda recém-criada cujo carregamento de itens falhou:
// remove pelo ledger os itens já incluídos e exclui a venda.
func (c *SaleController) rollbackSale(ctx *gin.Context, saleID string) {
	items, err := c.saleRepo.ListItemsBySale(ctx, saleID)
	if err != nil {
		c.logger.Error("erro ao desfazer venda: listagem de itens falhou", "sale_id", saleID, "error", err)
		return
	}

	for _, item := range items {
		if err := c.ledger.RemoveItem(ctx, item.ID); err != nil {
			c.logger.Error("erro ao desfazer item da venda", "item_id", item.ID, "error", err)
			return
		}
	}

	if err := c.saleRepo.Delete(ctx, saleID); err != nil {
		c.logger.Error("erro ao excluir venda desfeita", "sale_id", saleID, "error", err)
	}
}

// respondLedgerError mapeia os erros do ledger para o status HTTP adequado
func (c *SaleController) respondLedgerError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
	case errors.Is(err, repository.ErrSaleNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
	case errors.Is(err, repository.ErrSaleItemNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item de venda não encontrado", err.Error()))
	case errors.Is(err, repository.ErrInsufficientStock):
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "estoque insuficiente", err.Error()))
	case errors.Is(err, saledomain.ErrInvalidQuantity), errors.Is(err, saledomain.ErrNegativeUnitPrice):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "item inválido", err.Error()))
	default:
		c.logger.Error(message, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, message, err.Error()))
	}
}
