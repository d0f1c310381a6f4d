package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/todo-system/internal/core/domain"
	"github.com/taskhive/todo-system/internal/core/ports"
)

// StatsCache abstracts the per-user stats cache (Redis). A nil StatsCache
// disables caching entirely.
type StatsCache interface {
	// Get returns the cached stats for ownerID, or nil on a miss.
	Get(ctx context.Context, ownerID string) (*domain.TodoStats, error)
	Set(ctx context.Context, ownerID string, stats *domain.TodoStats) error
	Invalidate(ctx context.Context, ownerID string) error
}

type todoService struct {
	repo  ports.TodoRepository
	cache StatsCache
	log   zerolog.Logger
}

// NewTodoService returns a TodoService implementation. cache may be nil.
func NewTodoService(repo ports.TodoRepository, cache StatsCache, log zerolog.Logger) ports.TodoService {
	return &todoService{repo: repo, cache: cache, log: log}
}

// List returns all todos owned by ownerID, newest creation first.
func (s *todoService) List(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates input, applies defaults, and persists a new todo.
func (s *todoService) Create(ctx context.Context, input ports.CreateTodoInput) (*domain.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	priority := domain.PriorityMedium
	if input.Priority != "" {
		priority = domain.Priority(input.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
	}

	var dueDate *time.Time
	if input.DueDate != "" {
		ts, err := time.Parse(time.RFC3339, input.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidDueDate
		}
		dueDate = &ts
	}

	todo := &domain.Todo{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Completed:   false,
		Priority:    priority,
		DueDate:     dueDate,
		Category:    strings.TrimSpace(input.Category),
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create todo")
		return nil, err
	}

	s.invalidateStats(ctx, input.OwnerID)
	s.log.Info().Str("todo_id", created.ID).Str("owner_id", input.OwnerID).Msg("todo created")
	return created, nil
}

// Update applies a partial update. Only fields present in the request
// change; an explicit empty string clears optional fields, while the title
// stays subject to the non-empty invariant. A todo owned by someone else is
// indistinguishable from a missing one.
func (s *todoService) Update(ctx context.Context, ownerID, id string, input ports.UpdateTodoInput) (*domain.Todo, error) {
	var patch ports.TodoPatch

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		patch.Title = &title
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		patch.Description = &desc
	}
	if input.Completed != nil {
		patch.Completed = input.Completed
	}
	if input.Priority != nil {
		priority := domain.Priority(*input.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
		patch.Priority = &priority
	}
	if input.DueDate != nil {
		if *input.DueDate == "" {
			patch.ClearDueDate = true
		} else {
			ts, err := time.Parse(time.RFC3339, *input.DueDate)
			if err != nil {
				return nil, domain.ErrInvalidDueDate
			}
			patch.DueDate = &ts
		}
	}
	if input.Category != nil {
		cat := strings.TrimSpace(*input.Category)
		patch.Category = &cat
	}

	updated, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	s.log.Info().Str("todo_id", id).Str("owner_id", ownerID).Msg("todo updated")
	return updated, nil
}

// Delete removes a todo in a single atomic find-and-remove.
func (s *todoService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)
	s.log.Info().Str("todo_id", id).Str("owner_id", ownerID).Msg("todo deleted")
	return nil
}

// Stats returns aggregate counts for ownerID, consulting the cache first.
// Cache failures are logged and ignored; the store remains authoritative.
func (s *todoService) Stats(ctx context.Context, ownerID string) (*domain.TodoStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("stats cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.repo.Stats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, stats); err != nil {
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func (s *todoService) invalidateStats(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("stats cache invalidation failed")
	}
}
