package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, email string, fullName *string, passwordHash, passwordSalt []byte, isStaff bool) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}
