package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/dto"
	"github.com/joaovitorvlb/api-autopeck/internal/adapter/repository"
	employeedomain "github.com/joaovitorvlb/api-autopeck/internal/domain/employee"
	"github.com/joaovitorvlb/api-autopeck/pkg/logger"
)

// EmployeeController gerencia as requisições relacionadas a funcionários
type EmployeeController struct {
	employeeRepo employeedomain.Repository
	logger       logger.Logger
}

// NewEmployeeController cria uma nova instância de EmployeeController
func NewEmployeeController(employeeRepo employeedomain.Repository, logger logger.Logger) *EmployeeController {
	return &EmployeeController{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create cria um novo funcionário
// @Summary Criar funcionário
// @Description Cria um novo funcionário no sistema
// @Tags employees
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param employee body dto.EmployeeRequest true "Dados do funcionário"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /employees [post]
func (c *EmployeeController) Create(ctx *gin.Context) {
	var req dto.EmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	employee, err := employeedomain.NewEmployee(req.Name, req.Position, req.Salary, req.HiredAt)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar funcionário", err.Error()))
		return
	}

	if err := c.employeeRepo.Create(ctx, employee); err != nil {
		c.logger.Error("erro ao criar funcionário no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar funcionário", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// Get retorna um funcionário pelo ID
// @Summary Buscar funcionário
// @Description Retorna os dados de um funcionário pelo ID
// @Tags employees
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do funcionário"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /employees/{id} [get]
func (c *EmployeeController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	employee, err := c.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "funcionário não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar funcionário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar funcionário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// List retorna a lista de funcionários
// @Summary Listar funcionários
// @Description Retorna a lista de funcionários paginada
// @Tags employees
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.EmployeeListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /employees [get]
func (c *EmployeeController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	employees, err := c.employeeRepo.List(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar funcionários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar funcionários", err.Error()))
		return
	}

	total, err := c.employeeRepo.Count(ctx)
	if err != nil {
		c.logger.Error("erro ao contar funcionários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar funcionários", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEmployeeListResponse(employees, total, pagination.Page, pagination.PageSize))
}

// Update atualiza um funcionário existente
// @Summary Atualizar funcionário
// @Description Atualiza os dados de um funcionário existente
// @Tags employees
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do funcionário"
// @Param employee body dto.EmployeeRequest true "Dados do funcionário"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /employees/{id} [put]
func (c *EmployeeController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.EmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	employee, err := c.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "funcionário não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar funcionário", err.Error()))
		return
	}

	if err := employee.Update(req.Name, req.Position, req.Salary, req.HiredAt); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar funcionário", err.Error()))
		return
	}

	if err := c.employeeRepo.Update(ctx, employee); err != nil {
		c.logger.Error("erro ao atualizar funcionário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar funcionário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// Delete remove um funcionário
// @Summary Excluir funcionário
// @Description Remove um funcionário do sistema
// @Tags employees
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do funcionário"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /employees/{id} [delete]
func (c *EmployeeController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "funcionário não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao excluir funcionário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir funcionário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("funcionário excluído com sucesso", nil))
}
