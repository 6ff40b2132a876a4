package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/dto"
	"github.com/joaovitorvlb/api-autopeck/internal/adapter/repository"
	productdomain "github.com/joaovitorvlb/api-autopeck/internal/domain/product"
	saledomain "github.com/joaovitorvlb/api-autopeck/internal/domain/sale"
	"github.com/joaovitorvlb/api-autopeck/pkg/logger"
)

// SaleItemController gerencia os itens de venda. Toda mutação passa pelo
// ledger, que mantém estoque e total consistentes em uma transação.
type SaleItemController struct {
	saleRepo    saledomain.Repository
	ledger      saledomain.ItemLedger
	productRepo productdomain.Repository
	logger      logger.Logger
}

// NewSaleItemController cria uma nova instância de SaleItemController
func NewSaleItemController(
	saleRepo saledomain.Repository,
	ledger saledomain.ItemLedger,
	productRepo productdomain.Repository,
	logger logger.Logger,
) *SaleItemController {
	return &SaleItemController{
		saleRepo:    saleRepo,
		ledger:      ledger,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Add inclui um item em uma venda
// @Summary Incluir item de venda
// @Description Inclui um item na venda, debitando o estoque do produto e atualizando o total
// @Tags sale-items
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param item body dto.SaleItemRequest true "Dados do item"
// @Success 201 {object} dto.SaleItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/items [post]
func (c *SaleItemController) Add(ctx *gin.Context) {
	saleID := ctx.Param("id")

	var req dto.SaleItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if _, err := c.saleRepo.FindByID(ctx, saleID); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	unitPrice := decimal.Zero
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	} else {
		p, err := c.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
				return
			}
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
			return
		}
		unitPrice = p.Price
	}

	itemID, err := c.ledger.AddItem(ctx, saleID, req.ProductID, req.Quantity, unitPrice, req.ID)
	if err != nil {
		c.respondLedgerError(ctx, err, "erro ao incluir item de venda")
		return
	}

	item, err := c.saleRepo.FindItemByID(ctx, itemID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar item criado", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleItemResponse(item))
}

// UpdateQuantity altera a quantidade de um item de venda
// @Summary Alterar quantidade de item
// @Description Ajusta a quantidade do item, corrigindo estoque e total pela diferença
// @Tags sale-items
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param itemId path int true "ID do item"
// @Param item body dto.SaleItemQuantityRequest true "Nova quantidade"
// @Success 200 {object} dto.SaleItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sale-items/{itemId} [put]
func (c *SaleItemController) UpdateQuantity(ctx *gin.Context) {
	itemID, err := strconv.ParseInt(ctx.Param("itemId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id de item inválido", err.Error()))
		return
	}

	var req dto.SaleItemQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := c.ledger.UpdateItemQuantity(ctx, itemID, req.Quantity); err != nil {
		c.respondLedgerError(ctx, err, "erro ao alterar quantidade do item")
		return
	}

	item, err := c.saleRepo.FindItemByID(ctx, itemID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar item atualizado", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleItemResponse(item))
}

// Remove exclui um item de venda
// @Summary Remover item de venda
// @Description Remove o item, devolvendo a quantidade ao estoque e subtraindo do total
// @Tags sale-items
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param itemId path int true "ID do item"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sale-items/{itemId} [delete]
func (c *SaleItemController) Remove(ctx *gin.Context) {
	itemID, err := strconv.ParseInt(ctx.Param("itemId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id de item inválido", err.Error()))
		return
	}

	if err := c.ledger.RemoveItem(ctx, itemID); err != nil {
		c.respondLedgerError(ctx, err, "erro ao remover item de venda")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("item de venda removido com sucesso", nil))
}

// Get retorna um item de venda pelo ID
// @Summary Buscar item de venda
// @Description Retorna os dados de um item de venda pelo ID
// @Tags sale-items
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param itemId path int true "ID do item"
// @Success 200 {object} dto.SaleItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sale-items/{itemId} [get]
func (c *SaleItemController) Get(ctx *gin.Context) {
	itemID, err := strconv.ParseInt(ctx.Param("itemId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id de item inválido", err.Error()))
		return
	}

	item, err := c.saleRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item de venda não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar item de venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar item de venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleItemResponse(item))
}

// List retorna todos os itens de venda
// @Summary Listar itens de venda
// @Description Retorna todos os itens de venda registrados
// @Tags sale-items
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.SaleItemResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sale-items [get]
func (c *SaleItemController) List(ctx *gin.Context) {
	items, err := c.saleRepo.ListItems(ctx)
	if err != nil {
		c.logger.Error("erro ao listar itens de venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar itens de venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleItemResponses(items))
}

// ListBySale retorna os itens de uma venda
// @Summary Listar itens por venda
// @Description Retorna os itens de uma venda específica
// @Tags sale-items
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {array} dto.SaleItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/items [get]
func (c *SaleItemController) ListBySale(ctx *gin.Context) {
	saleID := ctx.Param("id")

	if _, err := c.saleRepo.FindByID(ctx, saleID); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	items, err := c.saleRepo.ListItemsBySale(ctx, saleID)
	if err != nil {
		c.logger.Error("erro ao listar itens da venda", "sale_id", saleID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar itens da venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleItemResponses(items))
}

// respondLedgerError mapeia os erros do ledger para o status HTTP adequado
func (c *SaleItemController) respondLedgerError(ctx *gin.Context, err error, message string) {
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
