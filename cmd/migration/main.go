package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/joaovitorvlb/api-autopeck/internal/infrastructure/database"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("erro ao executar migrações: %v", err)
	}

	log.Println("migrações aplicadas com sucesso")
}
