package ports

import (
	"context"

	"github.com/taskhive/todo-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
