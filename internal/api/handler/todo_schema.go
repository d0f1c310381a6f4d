package handler

import (
	"time"

	"github.com/taskhive/todo-system/internal/core/domain"
)

// errorResponse documents the standard error envelope rendered by the
// central error handler on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// createTodoRequest is validated by the service layer: the title must be
// non-empty after trimming and the priority one of low/medium/high.
type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Category    string `json:"category"`
}

// updateTodoRequest uses pointer fields so that absent and present-but-empty
// JSON values are distinguishable: nil means "leave untouched", an explicit
// empty string clears optional fields.
type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Category    *string `json:"category"`
}

type todoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type statsResponse struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	High      int64 `json:"high"`
	Medium    int64 `json:"medium"`
	Low       int64 `json:"low"`
}

type deletedResponse struct {
	Message string `json:"message"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
	}
}

func toStatsResponse(s *domain.TodoStats) statsResponse {
	return statsResponse{
		Total:     s.Total,
		Completed: s.Completed,
		Pending:   s.Pending,
		High:      s.High,
		Medium:    s.Medium,
		Low:       s.Low,
	}
}
