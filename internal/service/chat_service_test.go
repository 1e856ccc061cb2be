package service

import (
	"context"
	"strings"
	"testing"

	"dec-assist-be/internal/dto"
	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/repository/contract"
	"dec-assist-be/internal/repository/specification"
	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubLLM answers by prompt shape: the history rewrite and the MEL rewrite
// get fixed questions, everything else gets a generic completion.
type stubLLM struct {
	melCalls int
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	switch {
	case strings.Contains(prompt, "chat history:"):
		return "standalone question", nil
	case strings.Contains(prompt, "Design a MEL plan"):
		s.melCalls++
		return "How do I design a MEL plan for this program?", nil
	default:
		return "ok", nil
	}
}

func (s *stubLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return "ok", nil
}

type stubEmbedding struct{}

func (stubEmbedding) Generate(ctx context.Context, text, taskType string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

// stubFactory hands out a single unit of work over fixed in-memory data.
type stubFactory struct {
	uow *stubUow
}

func (f *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type stubUow struct {
	session *entity.ChatSession
	turns   []*entity.ChatTurn
}

func (u *stubUow) Begin(ctx context.Context) error { return nil }
func (u *stubUow) Commit() error                   { return nil }
func (u *stubUow) Rollback() error                 { return nil }

func (u *stubUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &stubSessionRepo{session: u.session}
}

func (u *stubUow) ChatTurnRepository() contract.ChatTurnRepository {
	return &stubTurnRepo{uow: u}
}

func (u *stubUow) CorpusChunkRepository() contract.CorpusChunkRepository {
	return &stubCorpusRepo{}
}

func (u *stubUow) DocumentMetaRepository() contract.DocumentMetaRepository {
	return &stubMetaRepo{}
}

type stubSessionRepo struct {
	session *entity.ChatSession
}

func (r *stubSessionRepo) Create(ctx context.Context, s *entity.ChatSession) error { return nil }
func (r *stubSessionRepo) Update(ctx context.Context, s *entity.ChatSession) error { return nil }
func (r *stubSessionRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

func (r *stubSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	return r.session, nil
}

func (r *stubSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return nil, nil
}

func (r *stubSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type stubTurnRepo struct {
	uow *stubUow
}

func (r *stubTurnRepo) Create(ctx context.Context, turn *entity.ChatTurn) error {
	turn.Id = uuid.New()
	r.uow.turns = append(r.uow.turns, turn)
	return nil
}

func (r *stubTurnRepo) Update(ctx context.Context, turn *entity.ChatTurn) error { return nil }
func (r *stubTurnRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

func (r *stubTurnRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatTurn, error) {
	return nil, nil
}

func (r *stubTurnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	return r.uow.turns, nil
}

func (r *stubTurnRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.turns)), nil
}

func (r *stubTurnRepo) DetachOwner(ctx context.Context, sessionId uuid.UUID, newOwner uuid.UUID) error {
	return nil
}

type stubCorpusRepo struct{}

func (stubCorpusRepo) Create(ctx context.Context, c *entity.CorpusChunk) error        { return nil }
func (stubCorpusRepo) CreateBulk(ctx context.Context, cs []*entity.CorpusChunk) error { return nil }
func (stubCorpusRepo) Delete(ctx context.Context, id uuid.UUID) error                 { return nil }
func (stubCorpusRepo) DeleteBySource(ctx context.Context, source string) error        { return nil }

func (stubCorpusRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusChunk, error) {
	return nil, nil
}

func (stubCorpusRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (stubCorpusRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.CorpusChunk, error) {
	return nil, nil
}

type stubMetaRepo struct{}

func (stubMetaRepo) Create(ctx context.Context, m *entity.DocumentMeta) error        { return nil }
func (stubMetaRepo) CreateBulk(ctx context.Context, ms []*entity.DocumentMeta) error { return nil }
func (stubMetaRepo) Upsert(ctx context.Context, m *entity.DocumentMeta) error        { return nil }

func (stubMetaRepo) FindByKey(ctx context.Context, docKey string) (*entity.DocumentMeta, error) {
	return nil, nil
}

func (stubMetaRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentMeta, error) {
	return nil, nil
}

func (stubMetaRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func newChatServiceFixture(userId uuid.UUID, sessionId uuid.UUID) (IChatService, *memory.ConversationMemory, *stubLLM) {
	factory := &stubFactory{uow: &stubUow{
		session: &entity.ChatSession{Id: sessionId, UserId: userId},
	}}
	conversations := memory.NewConversationMemory()
	model := &stubLLM{}

	svc := NewChatService(
		factory,
		model,
		stubEmbedding{},
		conversations,
		memory.NewSessionIndexStore(),
		memory.NewKeyedLock(),
		nil,
	)
	return svc, conversations, model
}

func TestSendMessageMELRewriteEntersConversationMemory(t *testing.T) {
	userId := uuid.New()
	sessionId := uuid.New()
	svc, conversations, model := newChatServiceFixture(userId, sessionId)

	resp, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		SessionId: sessionId.String(),
		Message:   "make a plan",
		Agent:     "mel",
	})

	assert.NoError(t, err)
	assert.Equal(t, "mel", resp.Agent)
	assert.Equal(t, 1, model.melCalls)

	// Both rewrites of the turn feed the next turn's context: the history
	// rewrite and the MEL-specific pass.
	assert.Equal(t, []string{
		"standalone question",
		"How do I design a MEL plan for this program?",
	}, conversations.Get(sessionId.String()))
}

func TestSendMessageNonMELAppendsSingleRewrite(t *testing.T) {
	userId := uuid.New()
	sessionId := uuid.New()
	svc, conversations, model := newChatServiceFixture(userId, sessionId)

	_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		SessionId: sessionId.String(),
		Message:   "what is an indicator",
		Agent:     "technical",
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, model.melCalls)
	assert.Equal(t, []string{"standalone question"}, conversations.Get(sessionId.String()))
}
