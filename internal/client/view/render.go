package view

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes a plain text view of s to w.
func Render(w io.Writer, s State) error {
	if s.Notice != "" {
		if _, err := fmt.Fprintln(w, s.Notice); err != nil {
			return err
		}
	}
	if s.Err != "" {
		if _, err := fmt.Fprintln(w, "Error:", s.Err); err != nil {
			return err
		}
	}

	if !s.LoggedIn {
		if s.Err == msgMustLogIn {
			return nil
		}
		_, err := fmt.Fprintln(w, msgMustLogIn)
		return err
	}

	if len(s.Tasks) == 0 {
		_, err := fmt.Fprintln(w, "No hay tareas.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTÍTULO\tDESCRIPCIÓN")
	for _, t := range s.Tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Title, t.Description)
	}
	return tw.Flush()
}
