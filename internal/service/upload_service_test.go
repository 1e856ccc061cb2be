package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"dec-assist-be/internal/constant"
	"dec-assist-be/internal/pkg/serverutils"
	"dec-assist-be/pkg/loader"
	"dec-assist-be/pkg/utils"
	"dec-assist-be/pkg/vectorstore"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func fileHeaders(n int) []*multipart.FileHeader {
	files := make([]*multipart.FileHeader, n)
	for i := range files {
		files[i] = &multipart.FileHeader{Filename: "doc.txt"}
	}
	return files
}

func TestUploadRejectsEmptyBatch(t *testing.T) {
	svc := NewUploadService(nil, nil, nil, nil, nil)

	_, err := svc.Upload(context.Background(), uuid.New(), uuid.New().String(), nil)

	var appErr *serverutils.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
	}
}

func TestUploadRejectsOversizedBatchBeforeAnyWork(t *testing.T) {
	// nil dependencies prove the limit check runs before anything else.
	svc := NewUploadService(nil, nil, nil, nil, nil)

	_, err := svc.Upload(context.Background(), uuid.New(), uuid.New().String(), fileHeaders(constant.MaxUploadFiles+1))

	var appErr *serverutils.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
		assert.Contains(t, appErr.Message, "too many files")
	}
}

func TestUploadRejectsMalformedSessionId(t *testing.T) {
	svc := NewUploadService(nil, nil, nil, nil, nil)

	_, err := svc.Upload(context.Background(), uuid.New(), "not-a-uuid", fileHeaders(1))

	var appErr *serverutils.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
	}
}

// multipartFile builds a real *multipart.FileHeader with content, the way
// Fiber hands them to the service.
func multipartFile(t *testing.T, name, content string) *multipart.FileHeader {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("files", name)
	assert.NoError(t, err)
	_, err = fw.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	assert.NoError(t, err)
	return form.File["files"][0]
}

// failingEmbedding succeeds until its failAt-th call, then errors.
type failingEmbedding struct {
	calls  int
	failAt int
}

func (f *failingEmbedding) Generate(ctx context.Context, text, taskType string) ([]float32, error) {
	f.calls++
	if f.calls == f.failAt {
		return nil, errors.New("embedding backend unavailable")
	}
	return []float32{1, 0, 0}, nil
}

func TestIngestFileLeavesIndexUntouchedOnEmbeddingFailure(t *testing.T) {
	// Content long enough to split into multiple chunks, with the embedding
	// backend failing on the second one. No chunk of the file may land in
	// the index.
	content := strings.Repeat("monitoring and evaluation frameworks ", 45)
	assert.Greater(t, len(content), utils.DefaultChunkSize)

	svc := &uploadService{
		embeddingProvider: &failingEmbedding{failAt: 2},
		loaders:           loader.NewRegistry(""),
	}
	index := vectorstore.NewMemIndex()

	_, err := svc.ingestFile(context.Background(), index, multipartFile(t, "plan.txt", content))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "embedding failed")
	assert.Equal(t, 0, index.Size())
}
