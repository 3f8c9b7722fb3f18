// Package view holds the client's declarative view state and the
// controller that drives it against the task API.
package view

import (
	"slices"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

// Dialog identifies the open modal.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogRegister
	DialogLogin
	DialogCreateTask
	DialogEditTask
)

func (d Dialog) String() string {
	switch d {
	case DialogRegister:
		return "register"
	case DialogLogin:
		return "login"
	case DialogCreateTask:
		return "create-task"
	case DialogEditTask:
		return "edit-task"
	default:
		return "none"
	}
}

// Field names a form input.
type Field int

const (
	FieldUsername Field = iota
	FieldPassword
	FieldTitle
	FieldDescription
)

// Form holds the inputs of the open dialog.
type Form struct {
	Username    string
	Password    string
	Title       string
	Description string
	// TaskID is the task being edited in DialogEditTask.
	TaskID int64
}

// State is everything the client shows.
type State struct {
	Dialog   Dialog
	Form     Form
	Tasks    []model.Task
	Notice   string
	Err      string
	LoggedIn bool
	Username string
}

// Open shows dialog d with an empty form.
func (s State) Open(d Dialog) State {
	s.Dialog = d
	s.Form = Form{}
	s.Err = ""
	return s
}

// Close dismisses the open dialog and discards its form.
func (s State) Close() State {
	s.Dialog = DialogNone
	s.Form = Form{}
	return s
}

// Set stores value in field of the form.
func (s State) Set(field Field, value string) State {
	switch field {
	case FieldUsername:
		s.Form.Username = value
	case FieldPassword:
		s.Form.Password = value
	case FieldTitle:
		s.Form.Title = value
	case FieldDescription:
		s.Form.Description = value
	}
	return s
}

// LoggedOut drops everything tied to the session.
func (s State) LoggedOut() State {
	s.LoggedIn = false
	s.Username = ""
	s.Tasks = nil
	return s
}

func (s State) clone() State {
	s.Tasks = slices.Clone(s.Tasks)
	return s
}
