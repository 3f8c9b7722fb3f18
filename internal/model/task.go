package model

import "context"

// TaskStore defines persistence operations for tasks.
//
// The collection is flat: tasks are not scoped to a user.
type TaskStore interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int64) error
}

// Task is a to-do record.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
}
