package service

import (
	"context"
	"time"

	"dec-assist-be/internal/constant"
	"dec-assist-be/internal/dto"
	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/pkg/serverutils"
	"dec-assist-be/internal/repository/specification"
	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/pkg/events"
	"dec-assist-be/pkg/memory"
	pkgNats "dec-assist-be/pkg/nats"

	"github.com/google/uuid"
)

// ISessionService defines the chat session lifecycle interface
type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

type sessionService struct {
	uowFactory    unitofwork.RepositoryFactory
	conversations *memory.ConversationMemory
	sessionIdx    *memory.SessionIndexStore
	natsPub       *pkgNats.Publisher
}

// NewSessionService creates a new session lifecycle service
func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	conversations *memory.ConversationMemory,
	sessionIdx *memory.SessionIndexStore,
	natsPub *pkgNats.Publisher,
) ISessionService {
	return &sessionService{
		uowFactory:    uowFactory,
		conversations: conversations,
		sessionIdx:    sessionIdx,
		natsPub:       natsPub,
	}
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	session := &entity.ChatSession{
		Id:     uuid.New(),
		UserId: userId,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		SessionId: session.Id.String(),
		CreatedAt: session.CreatedAt,
	}, nil
}

func (s *sessionService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderByCreatedAtAsc{},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SessionResponse, len(sessions))
	for i, sess := range sessions {
		out[i] = &dto.SessionResponse{
			SessionId: sess.Id.String(),
			CreatedAt: sess.CreatedAt,
		}
	}
	return out, nil
}

// Delete soft-deletes a session: ownership is detached from both the session
// and its turns, the durable rows survive for audit, and the session's
// in-process state (conversation memory, upload index) is dropped.
func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	sessionId, err := uuid.Parse(request.SessionId)
	if err != nil {
		return serverutils.NewBadRequestError("invalid session_id")
	}

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

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	session.UserId = uuid.Nil
	session.IsDeleted = true
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ChatTurnRepository().DetachOwner(ctx, sessionId, uuid.Nil); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.conversations.Delete(request.SessionId)
	s.sessionIdx.Delete(request.SessionId)

	s.publishDeleted(sessionId, userId)
	return nil
}

func (s *sessionService) publishDeleted(sessionId, userId uuid.UUID) {
	if s.natsPub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = s.natsPub.Publish(ctx, events.BaseEvent{
			Type: constant.EventSessionDeleted,
			Data: map[string]interface{}{
				"session_id": sessionId.String(),
				"user_id":    userId.String(),
			},
			OccurredAt: time.Now(),
		})
	}()
}
