package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/controller"
	"github.com/joaovitorvlb/api-autopeck/internal/adapter/api/route"
	"github.com/joaovitorvlb/api-autopeck/internal/adapter/repository"
	"github.com/joaovitorvlb/api-autopeck/internal/infrastructure/database"
	"github.com/joaovitorvlb/api-autopeck/pkg/logger"
	"github.com/joaovitorvlb/api-autopeck/pkg/mailer"
	"github.com/joaovitorvlb/api-autopeck/pkg/recovery"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp cria uma nova instância do aplicativo com todas as dependências
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Criar repositórios
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	userRepo := repository.NewUserRepository(db)
	ledger := repository.NewItemLedgerRepository(db)

	// Armazenamento de tokens de recuperação e envio de email
	tokenStore := recovery.NewMemoryStore()
	smtpMailer := mailer.NewSMTPMailerFromEnv()

	imageDir := getEnvOrDefault("IMAGE_DIR", "static/images/produtos")
	baseURL := getEnvOrDefault("BASE_URL", "http://localhost:8080")

	// Criar controllers
	customerController := controller.NewCustomerController(customerRepo, log)
	employeeController := controller.NewEmployeeController(employeeRepo, log)
	productController := controller.NewProductController(productRepo, imageDir, baseURL, log)
	imageController := controller.NewProductImageController(productRepo, imageDir, baseURL, log)
	saleController := controller.NewSaleController(saleRepo, ledger, customerRepo, employeeRepo, productRepo, log)
	itemController := controller.NewSaleItemController(saleRepo, ledger, productRepo, log)
	authController := controller.NewAuthController(userRepo, tokenStore, smtpMailer, log)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Arquivos estáticos das imagens de produtos
	router.Static("/images/produtos", imageDir)

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Rotas da API
	api := router.Group("/api/v1")
	route.RegisterAuthRoutes(api, authController)
	route.RegisterCustomerRoutes(api, customerController)
	route.RegisterEmployeeRoutes(api, employeeController)
	route.RegisterProductRoutes(api, productController, imageController)
	route.RegisterSaleRoutes(api, saleController, itemController)

	return &App{
		router: router,
		db:     db,
		logger: log,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := getEnvOrDefault("PORT", "8080")
	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// getEnvOrDefault retorna o valor de uma variável de ambiente ou um valor padrão
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
