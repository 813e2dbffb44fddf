package service

import (
	"github.com/Tomlord1122/portfolio-backend/internal/domain"
)

// CreateTodoRequest holds the data needed to create a new todo
type CreateTodoRequest struct {
	Title     string `json:"title" validate:"required,notblank,max=500"`
	Completed bool   `json:"completed"`
}

func (r CreateTodoRequest) Model() *domain.Todo {
	return &domain.Todo{Title: r.Title, Completed: r.Completed}
}

// UpdateTodoRequest holds the data for updating an existing todo.
// Using pointers allows distinguishing between a field being omitted
// vs. being set to its zero value (e.g., setting Completed to false).
type UpdateTodoRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,notblank,max=500"`
	Completed *bool   `json:"completed,omitempty"`
}

func (r UpdateTodoRequest) Changes() map[string]any {
	changes := make(map[string]any, 2)
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Completed != nil {
		changes["completed"] = *r.Completed
	}
	return changes
}

type TodoService = Service[domain.Todo, CreateTodoRequest, UpdateTodoRequest]
