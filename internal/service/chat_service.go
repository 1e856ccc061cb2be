package service

import (
	"context"
	"log"
	"strings"
	"time"

	"dec-assist-be/internal/constant"
	"dec-assist-be/internal/dto"
	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/pkg/serverutils"
	"dec-assist-be/internal/repository/specification"
	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/pkg/embedding"
	"dec-assist-be/pkg/events"
	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/memory"
	pkgNats "dec-assist-be/pkg/nats"
	"dec-assist-be/pkg/rag/agent"
	"dec-assist-be/pkg/rag/answer"
	"dec-assist-be/pkg/rag/citation"
	"dec-assist-be/pkg/rag/prompt"
	"dec-assist-be/pkg/rag/reformulate"
	"dec-assist-be/pkg/rag/retrieval"
	"dec-assist-be/pkg/store"

	"github.com/google/uuid"
)

// IChatService defines the conversational QA service interface
type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID) ([]*dto.ChatHistoryTurnResponse, error)
}

// chatService runs the per-turn pipeline: greeting short-circuit,
// reformulation against conversation memory, persona routing, dual-index
// retrieval, staged synthesis, suggestions, citations, persistence.
type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	natsPub           *pkgNats.Publisher
	ragLogger         *log.Logger

	conversations *memory.ConversationMemory
	sessionIdx    *memory.SessionIndexStore
	sessionLock   *memory.KeyedLock

	reformulator *reformulate.Reformulator
	router       *agent.Router
	orchestrator *retrieval.Orchestrator
	synthesizer  *answer.Synthesizer
	suggestions  *answer.SuggestionGenerator
	citations    *citation.Resolver
	corpusSearch *corpusSearcher
}

// NewChatService creates the chat service with all pipeline components
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
	conversations *memory.ConversationMemory,
	sessionIdx *memory.SessionIndexStore,
	sessionLock *memory.KeyedLock,
	natsPub *pkgNats.Publisher,
) IChatService {

	ragLogger := newPipelineLogger()

	return &chatService{
		uowFactory:        uowFactory,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		natsPub:           natsPub,
		ragLogger:         ragLogger,
		conversations:     conversations,
		sessionIdx:        sessionIdx,
		sessionLock:       sessionLock,
		reformulator:      reformulate.NewReformulator(llmProvider, ragLogger),
		router:            agent.NewRouter(llmProvider, ragLogger),
		orchestrator:      retrieval.NewOrchestrator(llmProvider, ragLogger),
		synthesizer:       answer.NewSynthesizer(llmProvider, ragLogger),
		suggestions:       answer.NewSuggestionGenerator(llmProvider, ragLogger),
		citations:         citation.NewResolver(newMetadataLookup(uowFactory), ragLogger),
		corpusSearch:      newCorpusSearcher(uowFactory, embeddingProvider),
	}
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	sessionId, err := uuid.Parse(request.SessionId)
	if err != nil {
		return nil, serverutils.NewBadRequestError("invalid session_id")
	}
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, serverutils.NewBadRequestError("message must not be empty")
	}

	// All memory updates for a session happen under its lock, so turn order
	// within a session is request arrival order.
	s.sessionLock.Lock(request.SessionId)
	defer s.sessionLock.Unlock(request.SessionId)

	session, err := s.findOwnedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if answer.IsGreeting(message) {
		return s.handleGreeting(ctx, userId, session, message)
	}

	// Reformulate against memory, then append the reformulated question
	// before retrieval runs.
	history := s.conversations.Get(request.SessionId)
	question, err := s.reformulator.Reformulate(ctx, history, message)
	if err != nil {
		s.ragLogger.Printf("[WARN] Reformulation failed, using raw message: %v", err)
		question = message
	}
	s.conversations.Append(request.SessionId, question)

	persona := store.ParsePersona(request.Agent)
	if !persona.IsRouted() {
		persona = s.router.Route(ctx, question)
	}

	if persona == store.PersonaMEL {
		if melQuestion, merr := s.reformulator.ReformulateMEL(ctx, question); merr == nil {
			question = melQuestion
			s.conversations.Append(request.SessionId, melQuestion)
		}
	}

	passages := s.retrievePassages(ctx, request.SessionId, question)

	response, err := s.synthesizer.Synthesize(ctx, question, passages, persona)
	if err != nil {
		// Degrade to the fixed acknowledgement rather than failing the turn.
		s.ragLogger.Printf("[ERROR] Synthesis failed: %v", err)
		response = prompt.FallbackPhrase
		passages = nil
	}

	suggestions := s.suggestions.Generate(ctx, question, response)
	resolved, unresolved := s.citations.Resolve(ctx, passages)

	sources := make([]string, len(resolved))
	sourceLinks := make([]string, len(resolved))
	for i, c := range resolved {
		sources[i] = c.Title
		sourceLinks[i] = c.Link
	}
	unresolvedSources := make([]string, len(unresolved))
	for i, c := range unresolved {
		unresolvedSources[i] = c.Title
	}

	persisted := make([]string, 0, len(resolved)+len(unresolved))
	for _, c := range resolved {
		persisted = append(persisted, c.Markdown())
	}
	for _, c := range unresolved {
		persisted = append(persisted, c.Markdown())
	}

	turn := &entity.ChatTurn{
		UserId:             userId,
		ChatSessionId:      session.Id,
		Agent:              persona.Key(),
		Message:            message,
		Response:           response,
		Sources:            strings.Join(persisted, constant.PersistedListSeparator),
		SuggestiveQuestion: strings.Join(suggestions, constant.PersistedListSeparator),
	}
	if err := s.persistTurn(ctx, turn); err != nil {
		return nil, err
	}

	s.publishTurnEvent(turn)

	return &dto.SendMessageResponse{
		SessionId:           request.SessionId,
		Agent:               persona.Key(),
		Response:            response,
		Sources:             sources,
		SourceLinks:         sourceLinks,
		UnresolvedSources:   unresolvedSources,
		SuggestiveQuestions: suggestions,
	}, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID) ([]*dto.ChatHistoryTurnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderByCreatedAtAsc{},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatHistoryTurnResponse, len(turns))
	for i, t := range turns {
		out[i] = &dto.ChatHistoryTurnResponse{
			Id:                 t.Id.String(),
			SessionId:          t.ChatSessionId.String(),
			Agent:              t.Agent,
			Message:            t.Message,
			Response:           t.Response,
			Sources:            t.Sources,
			SuggestiveQuestion: t.SuggestiveQuestion,
			CreatedAt:          t.CreatedAt,
		}
	}
	return out, nil
}

func (s *chatService) findOwnedSession(ctx context.Context, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("chat session not found")
	}
	return session, nil
}

// handleGreeting answers a bare greeting without touching retrieval or
// conversation memory.
func (s *chatService) handleGreeting(ctx context.Context, userId uuid.UUID, session *entity.ChatSession, message string) (*dto.SendMessageResponse, error) {
	response := s.synthesizer.Greet(ctx, message)

	turn := &entity.ChatTurn{
		UserId:        userId,
		ChatSessionId: session.Id,
		Agent:         store.PersonaNone.Key(),
		Message:       message,
		Response:      response,
	}
	if err := s.persistTurn(ctx, turn); err != nil {
		return nil, err
	}

	return &dto.SendMessageResponse{
		SessionId:           session.Id.String(),
		Agent:               store.PersonaNone.Key(),
		Response:            response,
		Sources:             []string{},
		SourceLinks:         []string{},
		UnresolvedSources:   []string{},
		SuggestiveQuestions: []string{},
	}, nil
}

// retrievePassages runs the shared-corpus retriever, and the session-index
// retriever when uploads exist for this session. Retrieval failures degrade
// to an empty passage set; the synthesizer then falls back in-band.
func (s *chatService) retrievePassages(ctx context.Context, sessionId, question string) []store.Passage {
	shared := retrieval.NewMultiQueryRetriever(s.llmProvider, s.corpusSearch, s.ragLogger)

	var session *retrieval.MultiQueryRetriever
	if idx, found := s.sessionIdx.Get(sessionId); found && idx.Size() > 0 {
		session = retrieval.NewMultiQueryRetriever(
			s.llmProvider,
			newMemIndexSearcher(idx, s.embeddingProvider),
			s.ragLogger,
		)
	}

	passages, err := s.orchestrator.Retrieve(ctx, shared, session, question)
	if err != nil {
		s.ragLogger.Printf("[ERROR] Retrieval failed, continuing without context: %v", err)
		return nil
	}
	return passages
}

func (s *chatService) persistTurn(ctx context.Context, turn *entity.ChatTurn) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ChatTurnRepository().Create(ctx, turn); err != nil {
		uow.Rollback()
		return err
	}
	return uow.Commit()
}

// publishTurnEvent emits a fire-and-forget turn-completed event. NATS being
// down never affects the request.
func (s *chatService) publishTurnEvent(turn *entity.ChatTurn) {
	if s.natsPub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		event := events.BaseEvent{
			Type: constant.EventChatTurnCompleted,
			Data: map[string]interface{}{
				"turn_id":    turn.Id.String(),
				"session_id": turn.ChatSessionId.String(),
				"user_id":    turn.UserId.String(),
				"agent":      turn.Agent,
			},
			OccurredAt: time.Now(),
		}
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.ragLogger.Printf("[WARN] Failed to publish turn event: %v", err)
		}
	}()
}

// metadataLookup adapts the document metadata repository to the citation
// resolver contract.
type metadataLookup struct {
	uowFactory unitofwork.RepositoryFactory
}

func newMetadataLookup(uowFactory unitofwork.RepositoryFactory) *metadataLookup {
	return &metadataLookup{uowFactory: uowFactory}
}

func (m *metadataLookup) Lookup(ctx context.Context, key string) (string, string, bool, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	meta, err := uow.DocumentMetaRepository().FindByKey(ctx, key)
	if err != nil {
		return "", "", false, err
	}
	if meta == nil {
		return "", "", false, nil
	}
	return meta.Title, meta.Permalink, true, nil
}
