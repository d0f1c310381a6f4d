package ports

import (
	"context"
	"time"

	"github.com/taskhive/todo-system/internal/core/domain"
)

// TodoPatch carries a partial update at the persistence boundary. Nil
// pointers mean "leave the field untouched". ClearDueDate removes the due
// date; it takes precedence over DueDate.
type TodoPatch struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *domain.Priority
	DueDate      *time.Time
	ClearDueDate bool
	Category     *string
}

// TodoRepository defines persistence operations for todos. Every operation
// is scoped to a single owner; a lookup that matches an id owned by someone
// else behaves exactly like a miss.
type TodoRepository interface {
	// ListByOwner returns all todos owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	// Update applies patch to the todo identified by id and owned by
	// ownerID, returning the updated document.
	Update(ctx context.Context, ownerID, id string, patch TodoPatch) (*domain.Todo, error)
	// Delete atomically removes the todo identified by id and owned by
	// ownerID (single find-and-remove, no separate lookup).
	Delete(ctx context.Context, ownerID, id string) error
	// Stats aggregates counts over all todos owned by ownerID. An owner
	// with zero todos yields all-zero counts, not an error.
	Stats(ctx context.Context, ownerID string) (*domain.TodoStats, error)
}
