package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ZhuneIDS/apitareas/internal/client"
	"github.com/ZhuneIDS/apitareas/internal/logger"
	"github.com/ZhuneIDS/apitareas/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoDialog     = errors.New("no dialog open")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrTaskNotFound = errors.New("task not found")
)

const (
	msgMustLogIn      = "Debe iniciar sesión para ver las tareas."
	msgSessionExpired = "Su sesión ha expirado. Inicie sesión nuevamente."
)

// API is the subset of the task API the controller uses.
type API interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*client.Session, error)
	ListTasks(ctx context.Context, s *client.Session) ([]model.Task, error)
	CreateTask(ctx context.Context, s *client.Session, title, description string) (model.Task, error)
	UpdateTask(ctx context.Context, s *client.Session, id int64, title, description string) (model.Task, error)
	DeleteTask(ctx context.Context, s *client.Session, id int64) error
}

// SessionStore persists the session between runs.
type SessionStore interface {
	Load(ctx context.Context) (*client.Session, error)
	Save(ctx context.Context, s *client.Session) error
	Clear(ctx context.Context) error
}

// Controller applies user actions to State. Operations are serialized.
type Controller struct {
	api      API
	sessions SessionStore
	logger   *logger.Logger

	mu      sync.Mutex
	state   State
	session *client.Session

	ready     chan struct{}
	readyOnce sync.Once
}

// NewController creates a Controller with no session loaded.
func NewController(api API, sessions SessionStore, logger *logger.Logger) *Controller {
	return &Controller{
		api:      api,
		sessions: sessions,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Ready is closed once Load has finished, successfully or not.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

// Load restores the saved session and, when there is one, the task list.
func (c *Controller) Load(ctx context.Context) error {
	defer c.readyOnce.Do(func() { close(c.ready) })

	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.sessions.Load(ctx)
	if err != nil {
		c.logger.Warn("View: failed to restore session", "error", err.Error())
		c.state.Err = "No se pudo restaurar la sesión."
		return err
	}
	if !session.LoggedIn() {
		c.state = c.state.LoggedOut()
		return nil
	}

	c.session = session
	c.state.LoggedIn = true
	c.state.Username = session.Username
	return c.refresh(ctx)
}

// Open shows dialog d.
func (c *Controller) Open(d Dialog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Open(d)
}

// Close dismisses the open dialog.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Close()
}

// SetField fills one input of the open dialog.
func (c *Controller) SetField(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Set(field, value)
}

// Submit sends the open dialog's form. On success the dialog closes and
// the task list is refreshed; on failure the dialog stays open with Err set.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Err = ""
	c.state.Notice = ""
	form := c.state.Form

	switch c.state.Dialog {
	case DialogRegister:
		return c.submitRegister(ctx, form)
	case DialogLogin:
		return c.submitLogin(ctx, form)
	case DialogCreateTask:
		return c.submitCreate(ctx, form)
	case DialogEditTask:
		return c.submitEdit(ctx, form)
	default:
		return ErrNoDialog
	}
}

func (c *Controller) submitRegister(ctx context.Context, form Form) error {
	if blank(form.Username) || blank(form.Password) {
		return c.invalid("Ingrese usuario y contraseña válidos.")
	}

	if err := c.api.Register(ctx, form.Username, form.Password); err != nil {
		c.state.Err = "Error al registrar: " + err.Error()
		return err
	}

	c.logger.Info("View: user registered", "username", form.Username)
	c.state = c.state.Close()
	c.state.Notice = "Usuario registrado exitosamente"
	return nil
}

func (c *Controller) submitLogin(ctx context.Context, form Form) error {
	if blank(form.Username) || blank(form.Password) {
		return c.invalid("Ingrese usuario y contraseña válidos.")
	}

	session, err := c.api.Login(ctx, form.Username, form.Password)
	if err != nil {
		c.state.Err = "Error al iniciar sesión: " + err.Error()
		return err
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		c.logger.Warn("View: failed to persist session", "error", err.Error())
	}

	c.session = session
	c.state = c.state.Close()
	c.state.LoggedIn = true
	c.state.Username = session.Username
	c.state.Notice = "Inicio de sesión exitoso"
	return c.refresh(ctx)
}

func (c *Controller) submitCreate(ctx context.Context, form Form) error {
	if blank(form.Title) || blank(form.Description) {
		return c.invalid("Por favor, ingrese un título y una descripción.")
	}

	task, err := c.api.CreateTask(ctx, c.session, form.Title, form.Description)
	if err != nil {
		return c.fail(ctx, err, "Error al agregar la tarea: "+err.Error())
	}

	c.logger.Debug("View: task created", "id", task.ID)
	c.state = c.state.Close()
	c.state.Notice = "Tarea agregada exitosamente"
	return c.refresh(ctx)
}

func (c *Controller) submitEdit(ctx context.Context, form Form) error {
	if blank(form.Title) || blank(form.Description) {
		return c.invalid("El título y la descripción no pueden estar vacíos.")
	}

	if _, err := c.api.UpdateTask(ctx, c.session, form.TaskID, form.Title, form.Description); err != nil {
		return c.fail(ctx, err, "Error al actualizar la tarea")
	}

	c.state = c.state.Close()
	c.state.Notice = "Tarea actualizada exitosamente"
	return c.refresh(ctx)
}

// OpenEdit opens the edit dialog prefilled with task id. The API has no
// single-task endpoint, so the task is looked up in a fresh list.
func (c *Controller) OpenEdit(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Notice = ""
	if err := c.refresh(ctx); err != nil {
		return err
	}

	idx := -1
	for i, t := range c.state.Tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.state.Err = "Tarea no encontrada."
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	task := c.state.Tasks[idx]
	c.state = c.state.Open(DialogEditTask)
	c.state.Form.TaskID = task.ID
	c.state.Form.Title = task.Title
	c.state.Form.Description = task.Description
	return nil
}

// Delete removes task id and refreshes the list.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Err = ""
	c.state.Notice = ""
	if err := c.api.DeleteTask(ctx, c.session, id); err != nil {
		return c.fail(ctx, err, "Error al eliminar la tarea")
	}

	c.state.Notice = "Tarea eliminada exitosamente"
	return c.refresh(ctx)
}

// Logout forgets the session locally and on disk.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("View: logging out", "username", c.state.Username)
	err := c.clearSession(ctx)
	c.state = c.state.Close()
	c.state.Err = ""
	c.state.Notice = "Sesión cerrada."
	return err
}

// Refresh reloads the task list.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	if !c.session.LoggedIn() {
		c.state = c.state.LoggedOut()
		c.state.Err = msgMustLogIn
		return ErrNotLoggedIn
	}

	tasks, err := c.api.ListTasks(ctx, c.session)
	if err != nil {
		return c.fail(ctx, err, "Error al cargar las tareas. Intente más tarde.")
	}

	c.state.Tasks = tasks
	return nil
}

// fail records a failed API call. Authentication failures end the session
// and open the login dialog.
func (c *Controller) fail(ctx context.Context, err error, msg string) error {
	if !client.IsAuthError(err) {
		c.logger.Warn("View: request failed", "error", err.Error())
		c.state.Err = msg
		return err
	}

	c.logger.Info("View: session rejected by server", "error", err.Error())
	if clearErr := c.clearSession(ctx); clearErr != nil {
		c.logger.Warn("View: failed to clear session", "error", clearErr.Error())
	}
	c.state = c.state.Open(DialogLogin)
	if errors.Is(err, client.ErrForbidden) {
		c.state.Err = msgSessionExpired
	} else {
		c.state.Err = msgMustLogIn
	}
	return err
}

func (c *Controller) clearSession(ctx context.Context) error {
	c.session = nil
	c.state = c.state.LoggedOut()
	return c.sessions.Clear(ctx)
}

func (c *Controller) invalid(msg string) error {
	c.state.Err = msg
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
