package route

import (
	"github.com/gin-gonic/gin"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/controller"
	"github.com/joaovitorvlb/api-autopeck/pkg/middleware"
)

// RegisterSaleRoutes registra as rotas de vendas e itens de venda
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController, itemController *controller.SaleItemController) {
	sales := r.Group("/sales")
	sales.Use(middleware.AuthMiddleware())
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
		sales.DELETE("/:id", saleController.Delete)

		sales.POST("/:id/items", itemController.Add)
		sales.GET("/:id/items", itemController.ListBySale)
	}

	items := r.Group("/sale-items")
	items.Use(middleware.AuthMiddleware())
	{
		items.GET("", itemController.List)
		items.GET("/:itemId", itemController.Get)
		items.PUT("/:itemId", itemController.UpdateQuantity)
		items.DELETE("/:itemId", itemController.Remove)
	}
}
