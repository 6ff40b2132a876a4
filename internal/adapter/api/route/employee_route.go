package route

import (
	"github.com/gin-gonic/gin"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/controller"
	"github.com/joaovitorvlb/api-autopeck/pkg/middleware"
)

// RegisterEmployeeRoutes registra as rotas do módulo de funcionários
func RegisterEmployeeRoutes(r *gin.RouterGroup, employeeController *controller.EmployeeController) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("", employeeController.Create)
		employees.GET("", employeeController.List)
		employees.GET("/:id", employeeController.Get)
		employees.PUT("/:id", employeeController.Update)
		employees.DELETE("/:id", employeeController.Delete)
	}
}
