package route

import (
	"github.com/gin-gonic/gin"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/controller"
	"github.com/joaovitorvlb/api-autopeck/pkg/middleware"
)

// RegisterAuthRoutes registra as rotas de autenticação e recuperação de senha
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/setup", authController.Setup)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/validate-recovery-token", authController.ValidateRecoveryToken)
		auth.POST("/reset-password", authController.ResetPassword)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", authController.Me)
			protected.POST("/logout", authController.Logout)
			protected.POST("/users", authController.CreateUser)
		}
	}
}
