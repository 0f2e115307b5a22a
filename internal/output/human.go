package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/tracketdev/tracket/internal/render"
)

// writeHumanSuccess writes a human-readable success message to w.
// Single-line confirmations ("Moved fix-login to done") get a checkmark
// prefix; multi-line content such as the board, tables, and detail views is
// printed as-is so its own formatting survives.
func writeHumanSuccess(w io.Writer, message string) {
	if message == "" {
		return
	}
	if strings.Contains(message, "\n") {
		fmt.Fprintln(w, message)
		return
	}
	if render.ColorsEnabled() {
		fmt.Fprintf(w, "%s %s\n", okStyle.Render("✔"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// writeHumanError writes a human-readable error message to w. The message
// already carries the command's context ("updating ticket fix-login: ..."),
// so only the Error: label is added here.
func writeHumanError(w io.Writer, err error) {
	if render.ColorsEnabled() {
		fmt.Fprintf(w, "%s %s %s\n", errStyle.Render("✘"), errStyle.Render("Error:"), err)
	} else {
		fmt.Fprintf(w, "Error: %s\n", err)
	}
}
