package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ZhuneIDS/apitareas/internal/logger"
	"github.com/ZhuneIDS/apitareas/internal/model"
)

// maxIDAttempts bounds how often Create draws a new id after a collision.
const maxIDAttempts = 5

// idSequence hands out clock-derived ids that strictly increase: the current
// time in milliseconds, or last+1 if the clock has not moved past last.
type idSequence struct {
	mu     sync.Mutex
	last   int64
	seeded bool
	now    func() time.Time
}

// seed raises last to the largest id already in store. Only the first
// successful call reads the store.
func (s *idSequence) seed(ctx context.Context, store model.TaskStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return nil
	}

	tasks, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		s.last = max(s.last, t.ID)
	}
	s.seeded = true
	return nil
}

func (s *idSequence) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Task implements task CRUD over a TaskStore.
type Task struct {
	taskStore model.TaskStore
	ids       *idSequence
	logger    *logger.Logger
}

func NewTask(taskStore model.TaskStore, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		ids:       &idSequence{now: time.Now},
		logger:    logger,
	}
}

// List returns every task.
func (s *Task) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		s.logger.Error("Task service: failed to list tasks",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create stores a new task under a fresh id.
func (s *Task) Create(ctx context.Context, title, description string) (model.Task, error) {
	if err := validateTask(title, description); err != nil {
		return model.Task{}, err
	}

	if err := s.ids.seed(ctx, s.taskStore); err != nil {
		s.logger.Error("Task service: failed to read existing task ids",
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	for attempt := 1; ; attempt++ {
		task := model.Task{
			ID:          s.ids.next(),
			Title:       title,
			Description: description,
		}

		created, err := s.taskStore.Create(ctx, task)
		if err == nil {
			s.logger.Info("Task service: task created",
				"id", created.ID)
			return created, nil
		}
		if !errors.Is(err, model.ErrAlreadyExists) || attempt == maxIDAttempts {
			s.logger.Error("Task service: failed to create task",
				"id", task.ID,
				"attempt", attempt,
				"error", err.Error())
			return model.Task{}, fmt.Errorf("failed to create task: %w", err)
		}
	}
}

// Update replaces title and description of the task with id.
func (s *Task) Update(ctx context.Context, id int64, title, description string) (model.Task, error) {
	if err := validateTask(title, description); err != nil {
		return model.Task{}, err
	}

	updated, err := s.taskStore.Update(ctx, model.Task{ID: id, Title: title, Description: description})
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, err
	}
	if err != nil {
		s.logger.Error("Task service: failed to update task",
			"id", id,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task service: task updated",
		"id", id)

	return updated, nil
}

// Delete removes the task with id; an absent id is not an error.
func (s *Task) Delete(ctx context.Context, id int64) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		s.logger.Error("Task service: failed to delete task",
			"id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted",
		"id", id)

	return nil
}

func validateTask(title, description string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: El título y la descripción son obligatorios", ErrValidation)
	}
	return nil
}
