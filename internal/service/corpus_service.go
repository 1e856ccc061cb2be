package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"dec-assist-be/internal/dto"
	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/pkg/embedding"
	"dec-assist-be/pkg/loader"
	"dec-assist-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ICorpusService manages the shared corpus: queueing documents for
// ingestion, consuming the ingestion queue, and loading the metadata catalog
type ICorpusService interface {
	QueueDocument(ctx context.Context, path string) error
	Consume(ctx context.Context) error
	IngestMetadataCSV(ctx context.Context, csvPath string) (int, error)
}

type corpusService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	loaders           *loader.Registry
}

// NewCorpusService creates a new corpus ingestion service
func NewCorpusService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	loaders *loader.Registry,
) ICorpusService {
	return &corpusService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		loaders:           loaders,
	}
}

// QueueDocument publishes an ingestion message for one corpus file.
func (cs *corpusService) QueueDocument(ctx context.Context, path string) error {
	payload, err := json.Marshal(dto.IngestCorpusDocumentMessage{
		Path:   path,
		Source: filepath.Base(path),
	})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return cs.pubSub.Publish(cs.topicName, msg)
}

// Consume subscribes to the ingestion topic and embeds queued documents into
// the shared corpus index.
func (cs *corpusService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *corpusService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestCorpusDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingestion message: %v", err)
		msg.Ack() // malformed messages are not retriable
		return
	}

	log.Printf("[INFO] Ingesting corpus document: %s", payload.Source)

	if err := cs.ingestDocument(ctx, payload.Path, payload.Source); err != nil {
		log.Printf("[ERROR] Ingestion failed for %s: %v", payload.Source, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *corpusService) ingestDocument(ctx context.Context, path, source string) error {
	ldr, err := cs.loaders.Lookup(source)
	if err != nil {
		return err
	}
	content, err := ldr.Load(path)
	if err != nil {
		return err
	}

	pieces := utils.SplitText(content, utils.DefaultChunkSize, utils.DefaultChunkOverlap)
	if len(pieces) == 0 {
		return fmt.Errorf("no extractable text in %s", source)
	}

	chunks := make([]*entity.CorpusChunk, 0, len(pieces))
	for i, piece := range pieces {
		vector, err := cs.embeddingProvider.Generate(ctx, piece, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embedding chunk %d: %w", i, err)
		}
		chunks = append(chunks, &entity.CorpusChunk{
			Content:    piece,
			Source:     source,
			ChunkIndex: i,
			Embedding:  vector,
		})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	// Re-ingesting a document replaces its chunks.
	if err := uow.CorpusChunkRepository().DeleteBySource(ctx, source); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.CorpusChunkRepository().CreateBulk(ctx, chunks); err != nil {
		uow.Rollback()
		return err
	}
	return uow.Commit()
}

// IngestMetadataCSV loads the corpus metadata catalog export. The first row
// is the header; title and permalink columns are matched by name, all other
// columns are kept as JSON extras.
func (cs *corpusService) IngestMetadataCSV(ctx context.Context, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	keyCol, titleCol, linkCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "doc_id", "document_id", "id":
			keyCol = i
		case "title", "document title":
			titleCol = i
		case "permalink", "url", "link":
			linkCol = i
		}
	}
	if keyCol < 0 || titleCol < 0 {
		return 0, fmt.Errorf("csv missing required doc_id/title columns")
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	repo := uow.DocumentMetaRepository()

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if keyCol >= len(record) || titleCol >= len(record) {
			continue
		}

		docKey := strings.TrimSpace(record[keyCol])
		if docKey == "" {
			continue
		}

		permalink := ""
		if linkCol >= 0 && linkCol < len(record) {
			permalink = strings.TrimSpace(record[linkCol])
		}

		extras := make(map[string]string)
		for i, value := range record {
			if i == keyCol || i == titleCol || i == linkCol || i >= len(header) {
				continue
			}
			if v := strings.TrimSpace(value); v != "" {
				extras[header[i]] = v
			}
		}
		extrasJSON, _ := json.Marshal(extras)

		meta := &entity.DocumentMeta{
			Id:        uuid.New(),
			DocKey:    docKey,
			Title:     strings.TrimSpace(record[titleCol]),
			Permalink: permalink,
			Extras:    extrasJSON,
		}
		if err := repo.Upsert(ctx, meta); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
