package contract

import (
	"context"

	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	Update(ctx context.Context, turn *entity.ChatTurn) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatTurn, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DetachOwner reassigns every turn of a session to the given owner id.
	// Used by session soft-deletion to unlink user data without destroying it.
	DetachOwner(ctx context.Context, sessionId uuid.UUID, newOwner uuid.UUID) error
}
