package jsonfile

import (
	"context"
	"slices"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

// TaskRepository keeps tasks in a JSON collection in insertion order.
type TaskRepository struct {
	tasks *Collection[model.Task]
}

func NewTaskRepository(tasks *Collection[model.Task]) *TaskRepository {
	return &TaskRepository{tasks: tasks}
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	return r.tasks.Load(ctx)
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	err := r.tasks.Mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		if slices.ContainsFunc(tasks, func(t model.Task) bool { return t.ID == task.ID }) {
			return nil, model.ErrAlreadyExists
		}
		return append(tasks, task), nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	var updated model.Task
	err := r.tasks.Mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		i := slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == task.ID })
		if i < 0 {
			return nil, model.ErrNotFound
		}
		tasks[i].Title = task.Title
		tasks[i].Description = task.Description
		updated = tasks[i]
		return tasks, nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// Delete removes the task with id. Deleting an absent id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.tasks.Mutate(ctx, func(tasks []model.Task) ([]model.Task, error) {
		return slices.DeleteFunc(tasks, func(t model.Task) bool { return t.ID == id }), nil
	})
}
