package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/repository/specification"
	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.CorpusChunkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Chat Session Repository", func(t *testing.T) {
		count, err := uow.ChatSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chat session count: %d", count)
	})

	t.Run("Check Corpus Chunk Repository", func(t *testing.T) {
		count, err := uow.CorpusChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Corpus chunk count: %d", count)
	})

	t.Run("Check Transactional Session Turn", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		userId := uuid.New()
		sessionId := uuid.New()
		session := &entity.ChatSession{
			Id:     sessionId,
			UserId: userId,
		}
		err = uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		turn := &entity.ChatTurn{
			Id:            uuid.New(),
			UserId:        userId,
			ChatSessionId: sessionId,
			Agent:         "none",
			Message:       "integration test question",
			Response:      "integration test answer",
		}
		err = uow.ChatTurnRepository().Create(ctx, turn)
		assert.NoError(t, err)

		found, err := uow.ChatTurnRepository().FindOne(ctx, specification.ByID{ID: turn.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, sessionId, found.ChatSessionId)
		}

		// Rollback via defer; nothing persists past this test.
	})

	t.Run("Check Document Metadata Upsert", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		key := "integration-" + uuid.New().String()
		meta := &entity.DocumentMeta{
			Id:        uuid.New(),
			DocKey:    key,
			Title:     "Integration Fixture",
			Permalink: "https://example.org/" + key,
		}
		err = uow.DocumentMetaRepository().Upsert(ctx, meta)
		assert.NoError(t, err)

		meta.Title = "Integration Fixture Updated"
		err = uow.DocumentMetaRepository().Upsert(ctx, meta)
		assert.NoError(t, err)

		found, err := uow.DocumentMetaRepository().FindByKey(ctx, key)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, "Integration Fixture Updated", found.Title)
		}
	})
}
