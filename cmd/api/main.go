package main

import (
	"log"

	_ "jardin_services/docs"
	"jardin_services/internal/adapter/http/routes"
	"jardin_services/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Jardin Services API
// @version         1.0
// @description     Garden and handyman marketplace: service requests, price adjustment negotiation and checkout, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	routes.Run(cfg)
}
