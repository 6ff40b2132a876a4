package route

import (
	"github.com/gin-gonic/gin"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/controller"
	"github.com/joaovitorvlb/api-autopeck/pkg/middleware"
)

// RegisterProductRoutes registra as rotas do módulo de produtos, incluindo
// reposição de estoque e imagens
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController, imageController *controller.ProductImageController) {
	products := r.Group("/products")
	products.Use(middleware.AuthMiddleware())
	{
		products.POST("", productController.Create)
		products.GET("", productController.List)
		products.GET("/:id", productController.Get)
		products.PUT("/:id", productController.Update)
		products.DELETE("/:id", productController.Delete)
		products.PATCH("/:id/replenish", productController.Replenish)

		products.POST("/:id/image", imageController.Upload)
		products.GET("/:id/image", imageController.Get)
		products.DELETE("/:id/image", imageController.Delete)
	}
}
