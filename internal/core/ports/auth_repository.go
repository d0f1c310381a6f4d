package ports

import (
	"context"

	"github.com/taskhive/todo-system/internal/core/domain"
)

// AuthRepository defines the interface for user persistence. Emails are
// stored and queried in normalized form (lowercased, trimmed).
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
