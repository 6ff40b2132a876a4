package main

import (
	"log"

	"github.com/joho/godotenv"
)

// @title API Autopeck
// @version 1.0
// @description API de retaguarda de vendas: clientes, funcionários, produtos, vendas e itens de venda
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	app, err := NewApp()
	if err != nil {
		log.Fatalf("erro ao inicializar a aplicação: %v", err)
	}
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatalf("erro ao iniciar o servidor: %v", err)
	}
}
