// cmd/server/main.go
package main

import (
	"fmt"

	"github.com/Annany2002/nebula-connector/api"
	"github.com/Annany2002/nebula-connector/api/handlers"
	"github.com/Annany2002/nebula-connector/config"
	"github.com/Annany2002/nebula-connector/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting Nebula connector server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
	}

	// Connections are opened per request and closed by the engine.
	router := api.SetupRouter(cfg, handlers.StorageOpener)

	customLog.Printf("Server listening on port %s", cfg.ServerPort)
	if err := router.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		customLog.Fatalf("Failed to start server: %v", err)
	}
}
