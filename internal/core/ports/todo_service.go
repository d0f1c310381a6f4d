package ports

import (
	"context"

	"github.com/taskhive/todo-system/internal/core/domain"
)

// CreateTodoInput carries all data needed to create a new todo. Optional
// fields left empty take documented defaults (priority=medium,
// completed=false, no due date).
type CreateTodoInput struct {
	OwnerID     string
	Title       string
	Description string
	Priority    string
	DueDate     string // RFC 3339, empty = no due date
	Category    string
}

// UpdateTodoInput carries a partial update from the transport layer. Nil
// pointers mean the field was absent from the request and is left
// untouched. An explicit empty string clears optional fields; for the due
// date an empty string removes it.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *string // RFC 3339, empty string clears
	Category    *string
}

// TodoService defines use-case operations for todos. Every operation takes
// the owner id extracted from a verified session token; callers never reach
// another user's records.
type TodoService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	Create(ctx context.Context, input CreateTodoInput) (*domain.Todo, error)
	Update(ctx context.Context, ownerID, id string, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
	Stats(ctx context.Context, ownerID string) (*domain.TodoStats, error)
}
