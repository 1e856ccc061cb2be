package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"dec-assist-be/internal/constant"
	"dec-assist-be/internal/dto"
	"dec-assist-be/internal/pkg/serverutils"
	"dec-assist-be/internal/repository/specification"
	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/pkg/embedding"
	"dec-assist-be/pkg/loader"
	"dec-assist-be/pkg/memory"
	"dec-assist-be/pkg/store"
	"dec-assist-be/pkg/utils"
	"dec-assist-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// IUploadService defines the session-document ingestion interface
type IUploadService interface {
	Upload(ctx context.Context, userId uuid.UUID, sessionId string, files []*multipart.FileHeader) (*dto.UploadResponse, error)
}

// uploadService builds ephemeral per-session vector indices from uploaded
// documents. Each file is staged to a temp path, parsed by its loader, split
// into chunks, embedded, and added to the session's in-memory index. Files
// fail independently; a batch over the limit is rejected before any work.
type uploadService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	loaders           *loader.Registry
	sessionIdx        *memory.SessionIndexStore
	sessionLock       *memory.KeyedLock
	logger            *log.Logger
}

// NewUploadService creates a new upload ingestion service
func NewUploadService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	loaders *loader.Registry,
	sessionIdx *memory.SessionIndexStore,
	sessionLock *memory.KeyedLock,
) IUploadService {
	return &uploadService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		loaders:           loaders,
		sessionIdx:        sessionIdx,
		sessionLock:       sessionLock,
		logger:            newPipelineLogger(),
	}
}

func (s *uploadService) Upload(ctx context.Context, userId uuid.UUID, sessionId string, files []*multipart.FileHeader) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, serverutils.NewBadRequestError("no files provided")
	}
	if len(files) > constant.MaxUploadFiles {
		return nil, serverutils.NewBadRequestError(
			fmt.Sprintf("too many files: at most %d per upload", constant.MaxUploadFiles))
	}

	sid, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, serverutils.NewBadRequestError("invalid session_id")
	}
	if err := s.verifySession(ctx, userId, sid); err != nil {
		return nil, err
	}

	s.sessionLock.Lock(sessionId)
	defer s.sessionLock.Unlock(sessionId)

	index, found := s.sessionIdx.Get(sessionId)
	if !found {
		index = vectorstore.NewMemIndex()
	}

	results := make([]dto.UploadFileResult, 0, len(files))
	indexed := false
	for _, fh := range files {
		chunks, ferr := s.ingestFile(ctx, index, fh)
		if ferr != nil {
			s.logger.Printf("[WARN] Upload failed for %s: %v", fh.Filename, ferr)
			results = append(results, dto.UploadFileResult{
				FileName: fh.Filename,
				Success:  false,
				Error:    ferr.Error(),
			})
			continue
		}
		indexed = true
		results = append(results, dto.UploadFileResult{
			FileName: fh.Filename,
			Success:  true,
			Chunks:   chunks,
		})
	}

	// Registering after the batch keeps the FIFO cap applied once per
	// upload, not once per file.
	if indexed {
		s.sessionIdx.Put(sessionId, index)
	}

	return &dto.UploadResponse{
		SessionId: sessionId,
		Files:     results,
	}, nil
}

func (s *uploadService) verifySession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NewNotFoundError("chat session not found")
	}
	return nil
}

// ingestFile stages, parses, splits and embeds one uploaded file into the
// index. All chunks are embedded before any of them is indexed, so a failed
// file contributes nothing. The temp file is removed regardless of outcome.
func (s *uploadService) ingestFile(ctx context.Context, index *vectorstore.MemIndex, fh *multipart.FileHeader) (int, error) {
	ldr, err := s.loaders.Lookup(fh.Filename)
	if err != nil {
		return 0, err
	}

	tmpPath, err := s.stageTempFile(fh)
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmpPath)

	content, err := ldr.Load(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("parse failed: %w", err)
	}

	chunks := utils.SplitText(content, utils.DefaultChunkSize, utils.DefaultChunkOverlap)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no extractable text")
	}

	vectors := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		vector, err := s.embeddingProvider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embedding failed: %w", err)
		}
		vectors[i] = vector
	}

	for i, chunk := range chunks {
		if err := index.Add(store.DocumentChunk{Content: chunk, Source: fh.Filename}, vectors[i]); err != nil {
			return 0, err
		}
	}

	return len(chunks), nil
}

func (s *uploadService) stageTempFile(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
