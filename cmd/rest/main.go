package main

import (
	"context"
	"log"

	"dec-assist-be/internal/bootstrap"
	"dec-assist-be/internal/config"
	"dec-assist-be/internal/server"
	"dec-assist-be/internal/tracer"
	"dec-assist-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	log.Println("Background: Starting Corpus Ingestion Consumer...")
	if err := container.CorpusService.Consume(context.Background()); err != nil {
		log.Panicf("Unable to start corpus ingestion consumer: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
