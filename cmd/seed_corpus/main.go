package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"dec-assist-be/internal/bootstrap"
	"dec-assist-be/internal/config"
	"dec-assist-be/pkg/database"
)

// Seeds the shared corpus: queues every supported file in the corpus
// directory for embedding and loads the metadata catalog CSV.
func main() {
	corpusDir := flag.String("corpus", "./corpus", "directory of corpus documents")
	metadataCSV := flag.String("metadata", "", "path to the metadata catalog CSV export")
	wait := flag.Duration("wait", 5*time.Minute, "how long to wait for ingestion to drain")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	ctx := context.Background()

	if err := container.CorpusService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start ingestion consumer: %v", err)
	}

	if *metadataCSV != "" {
		n, err := container.CorpusService.IngestMetadataCSV(ctx, *metadataCSV)
		if err != nil {
			log.Fatalf("Metadata CSV ingestion failed after %d rows: %v", n, err)
		}
		log.Printf("Loaded %d metadata catalog rows", n)
	}

	entries, err := os.ReadDir(*corpusDir)
	if err != nil {
		log.Fatalf("Failed to read corpus directory: %v", err)
	}

	queued := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(*corpusDir, entry.Name())
		if err := container.CorpusService.QueueDocument(ctx, path); err != nil {
			log.Printf("Warn: failed to queue %s: %v", entry.Name(), err)
			continue
		}
		queued++
	}
	log.Printf("Queued %d corpus documents for ingestion", queued)

	// The gochannel bus is in-process; give the consumer time to drain
	// before exiting.
	log.Printf("Waiting up to %s for ingestion to finish...", *wait)
	time.Sleep(*wait)
}
