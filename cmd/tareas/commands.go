package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZhuneIDS/apitareas/internal/client"
	"github.com/ZhuneIDS/apitareas/internal/client/view"
	"github.com/ZhuneIDS/apitareas/internal/logger"
)

type app struct {
	server      string
	sessionFile string
	verbose     bool
	out         io.Writer
	errOut      io.Writer
}

func rootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "tareas",
		Short: "Manage tasks on an apitareas server",
		Long: `Manage tasks on an apitareas server.

Examples:
  tareas register ana s3cret
  tareas login ana s3cret
  tareas add --titulo "Comprar leche" --descripcion "Entera"
  tareas list
  tareas edit 1718000000000 --titulo "Comprar pan"
  tareas delete 1718000000000
  tareas logout
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&a.server, "server", "http://localhost:3000", "API base URL")
	cmd.PersistentFlags().StringVar(&a.sessionFile, "session-file", defaultSessionFile(), "File that keeps the login session")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests and state changes to stderr")

	cmd.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.listCmd(),
		a.addCmd(),
		a.editCmd(),
		a.deleteCmd(),
	)
	return cmd
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "apitareas", "session.json")
}

// controller builds a view controller and waits for it to load the session.
func (a *app) controller(ctx context.Context) (*view.Controller, error) {
	level := int(slog.LevelError)
	if a.verbose {
		level = int(slog.LevelDebug)
	}
	log := logger.NewWithWriter(a.errOut, level)

	store, err := client.NewSessionStore(a.sessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}

	api := client.New(a.server, &http.Client{Timeout: 10 * time.Second})
	c := view.NewController(api, store, log)
	go func() {
		if err := c.Load(ctx); err != nil {
			log.Debug("initial load failed", "error", err.Error())
		}
	}()

	select {
	case <-c.Ready():
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run loads the controller, applies action and prints the resulting state.
func (a *app) run(cmd *cobra.Command, action func(ctx context.Context, c *view.Controller) error) error {
	ctx := cmd.Context()
	c, err := a.controller(ctx)
	if err != nil {
		return err
	}

	actionErr := action(ctx, c)
	if err := view.Render(a.out, c.State()); err != nil {
		return err
	}
	return actionErr
}

func (a *app) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <usuario> <contraseña>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *view.Controller) error {
				return submit(ctx, c, view.DialogRegister, map[view.Field]string{
					view.FieldUsername: args[0],
					view.FieldPassword: args[1],
				})
			})
		},
	}
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <usuario> <contraseña>",
		Short: "Log in and keep the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *view.Controller) error {
				return submit(ctx, c, view.DialogLogin, map[view.Field]string{
					view.FieldUsername: args[0],
					view.FieldPassword: args[1],
				})
			})
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *view.Controller) error {
				return c.Logout(ctx)
			})
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(_ context.Context, c *view.Controller) error {
				if !c.State().LoggedIn {
					return view.ErrNotLoggedIn
				}
				return nil
			})
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *view.Controller) error {
				return submit(ctx, c, view.DialogCreateTask, map[view.Field]string{
					view.FieldTitle:       title,
					view.FieldDescription: description,
				})
			})
		},
	}
	cmd.Flags().StringVar(&title, "titulo", "", "Task title")
	cmd.Flags().StringVar(&description, "descripcion", "", "Task description")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *view.Controller) error {
				if err := c.OpenEdit(ctx, id); err != nil {
					return err
				}
				if cmd.Flags().Changed("titulo") {
					c.SetField(view.FieldTitle, title)
				}
				if cmd.Flags().Changed("descripcion") {
					c.SetField(view.FieldDescription, description)
				}
				return c.Submit(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&title, "titulo", "", "New task title")
	cmd.Flags().StringVar(&description, "descripcion", "", "New task description")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *view.Controller) error {
				return c.Delete(ctx, id)
			})
		},
	}
}

func submit(ctx context.Context, c *view.Controller, d view.Dialog, fields map[view.Field]string) error {
	c.Open(d)
	for f, v := range fields {
		c.SetField(f, v)
	}
	return c.Submit(ctx)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}
