package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	errorText   = color.New(color.FgRed).SprintFunc()
	labelText   = color.New(color.FgCyan, color.Bold).SprintFunc()
	dimText     = color.New(color.Faint).SprintFunc()
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successText("✓ "+fmt.Sprintf(format, args...)))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorText("✗ "+err.Error()))
}

// printResponse writes a Response as a status line and returns its error, if any.
func printResponse(w io.Writer, resp domain.Response) error {
	if resp.OK() {
		printSuccess(w, "%s", resp.Message)
		return nil
	}
	return responseError{msg: resp.Message}
}

// responseError carries an error Response message out of RunE.
type responseError struct {
	msg string
}

func (e responseError) Error() string {
	return e.msg
}
