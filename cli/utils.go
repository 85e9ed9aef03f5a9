package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/rotationtool/rotation"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgCyan).Fprint(w, "Info: ")
	printf(w, format, a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

// stateTable renders every field of s, with the matrix listed row by row.
func stateTable(s rotation.State) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Representation", "Field", "Value"})
	for _, f := range s.Quaternion {
		t.AppendRow(table.Row{rotation.Quaternion.String(), f.Label, f.Text})
	}
	t.AppendSeparator()
	for _, f := range s.AngleAxis {
		t.AppendRow(table.Row{rotation.AngleAxis.String(), f.Label, f.Text})
	}
	t.AppendSeparator()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			index := 3*col + row
			t.AppendRow(table.Row{rotation.RotationMatrix.String(), rotation.MatrixLabel(index), s.Matrix[index]})
		}
	}
	t.AppendFooter(table.Row{"", "", s.Sync()})
	return t.Render()
}
