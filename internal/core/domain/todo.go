package domain

import (
	"errors"
	"time"
)

// Priority is the urgency level of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var ErrTodoNotFound = errors.New("todo not found")
var ErrTitleRequired = errors.New("todo title is required")
var ErrInvalidPriority = errors.New("invalid priority")
var ErrInvalidDueDate = errors.New("invalid due date")

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is the core aggregate root. Every todo is owned by exactly one user
// and the owner never changes after creation.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
	OwnerID     string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TodoStats aggregates counts over all todos owned by a single user.
type TodoStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	High      int64 `json:"high"`
	Medium    int64 `json:"medium"`
	Low       int64 `json:"low"`
}
