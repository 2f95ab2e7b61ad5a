package dashboard

import (
	"fmt"
	"io"

	"optionflow/internal/flow"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders the model as a text table followed by warnings and errors.
func WriteTable(w io.Writer, m flow.Model) error {
	view := NewModelView(m)

	if _, err := fmt.Fprintf(w, "%s options expiring within %s (generated %s)\n",
		view.Currency, view.Window, view.GeneratedAt.Format("2006-01-02 15:04:05 MST")); err != nil {
		return err
	}

	if m.State == flow.StateReady {
		table := tablewriter.NewWriter(w)
		table.SetHeader(Columns)
		table.SetAutoWrapText(false)
		for _, r := range view.Rows {
			table.Append(r.Cells())
		}
		table.Render()

		for _, c := range flow.CountByLabel(m.Rows) {
			if _, err := fmt.Fprintf(w, "%-28s %d\n", c.Name, c.Value); err != nil {
				return err
			}
		}
	}

	for _, msg := range view.Warnings {
		if _, err := fmt.Fprintf(w, "WARNING: %s\n", msg); err != nil {
			return err
		}
	}
	for _, msg := range view.Errors {
		if _, err := fmt.Fprintf(w, "ERROR: %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}
