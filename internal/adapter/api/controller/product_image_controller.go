package controller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/dto"
	"github.com/joaovitorvlb/api-autopeck/internal/adapter/repository"
	productdomain "github.com/joaovitorvlb/api-autopeck/internal/domain/product"
	"github.com/joaovitorvlb/api-autopeck/pkg/imaging"
	"github.com/joaovitorvlb/api-autopeck/pkg/logger"
)

// maxImageUploadSize é o tamanho máximo aceito para upload de imagem (16 MB)
const maxImageUploadSize = 16 << 20

// ProductImageController gerencia o upload e a consulta de imagens de produtos
type ProductImageController struct {
	productRepo productdomain.Repository
	imageDir    string
	baseURL     string
	logger      logger.Logger
}

// NewProductImageController cria uma nova instância de ProductImageController
func NewProductImageController(productRepo productdomain.Repository, imageDir, baseURL string, logger logger.Logger) *ProductImageController {
	return &ProductImageController{
		productRepo: productRepo,
		imageDir:    imageDir,
		baseURL:     baseURL,
		logger:      logger,
	}
}

// Upload recebe uma imagem, gera as resoluções e associa ao produto.
// Imagens anteriores do produto são substituídas.
// @Summary Enviar imagem de produto
// @Description Recebe uma imagem (multipart) e gera as resoluções thumbnail, medium e large
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param image formData file true "Arquivo de imagem (png, jpg, jpeg, gif, webp)"
// @Success 201 {object} dto.ProductImagesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/image [post]
func (c *ProductImageController) Upload(ctx *gin.Context) {
	id := ctx.Param("id")

	product, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "arquivo de imagem não enviado", err.Error()))
		return
	}

	if file.Size > maxImageUploadSize {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "imagem excede o tamanho máximo de 16MB", ""))
		return
	}

	if !imaging.AllowedFile(file.Filename) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "extensão de arquivo não permitida", file.Filename))
		return
	}

	if err := os.MkdirAll(c.imageDir, 0o755); err != nil {
		c.logger.Error("erro ao criar diretório de imagens", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao preparar armazenamento de imagens", err.Error()))
		return
	}

	// Grava o original em arquivo temporário para gerar as resoluções
	tmpPath := filepath.Join(c.imageDir, "upload_tmp_"+filepath.Base(file.Filename))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		c.logger.Error("erro ao salvar upload de imagem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar imagem enviada", err.Error()))
		return
	}
	defer os.Remove(tmpPath)

	// Substitui as imagens anteriores do produto
	if _, err := imaging.RemoveProductImages(c.imageDir, product.ID); err != nil {
		c.logger.Error("erro ao remover imagens anteriores", "product_id", product.ID, "error", err)
	}

	baseFilename := imaging.BaseFilename(product.ID)
	created, err := imaging.CreateResolutions(tmpPath, baseFilename, c.imageDir)
	if err != nil {
		c.logger.Error("erro ao gerar resoluções da imagem", "product_id", product.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao processar imagem", err.Error()))
		return
	}

	if err := c.productRepo.SetHasImage(ctx, product.ID, true); err != nil {
		c.logger.Error("erro ao marcar produto com imagem", "product_id", product.ID, "error", err)
	}

	urls := make(map[string]string, len(created))
	for resolution, filename := range created {
		urls[resolution] = c.baseURL + "/images/produtos/" + filename
	}

	ctx.JSON(http.StatusCreated, dto.ProductImagesResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		Available:   len(urls),
		URLs:        urls,
	})
}

// Get retorna as URLs das imagens de um produto
// @Summary Consultar imagens de produto
// @Description Retorna as URLs das imagens do produto por resolução
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductImagesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/image [get]
func (c *ProductImageController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	product, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
		return
	}

	urls, err := imaging.FindProductImages(c.imageDir, product.ID, c.baseURL)
	if err != nil {
		c.logger.Error("erro ao localizar imagens do produto", "product_id", product.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao localizar imagens", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ProductImagesResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		Available:   len(urls),
		URLs:        urls,
	})
}

// Delete remove as imagens de um produto
// @Summary Excluir imagens de produto
// @Description Remove todas as imagens associadas ao produto
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/image [delete]
func (c *ProductImageController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	product, err := c.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "produto não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar produto", err.Error()))
		return
	}

	removed, err := imaging.RemoveProductImages(c.imageDir, product.ID)
	if err != nil {
		c.logger.Error("erro ao remover imagens do produto", "product_id", product.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover imagens", err.Error()))
		return
	}

	if err := c.productRepo.SetHasImage(ctx, product.ID, false); err != nil {
		c.logger.Error("erro ao desmarcar imagem do produto", "product_id", product.ID, "error", err)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("imagens do produto removidas", gin.H{"removed": len(removed)}))
}
