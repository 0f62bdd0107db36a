package runtime

import (
	"errors"
	"fmt"
	"io"

	"github.com/sergev/shona/lang"
	"github.com/sergev/shona/parser"
)

// Diagnostics writes syntax and runtime errors to a sink and remembers
// which kinds were seen.
type Diagnostics struct {
	w             io.Writer
	syntaxErrors  int
	runtimeErrors int
}

// NewDiagnostics reports to w. A nil writer discards reports.
func NewDiagnostics(w io.Writer) *Diagnostics {
	if w == nil {
		w = io.Discard
	}
	return &Diagnostics{w: w}
}

// ReportSyntax writes one line per syntax error, in the order given.
func (d *Diagnostics) ReportSyntax(errs parser.ErrorList) {
	for _, e := range errs {
		fmt.Fprintln(d.w, e.Error())
		d.syntaxErrors++
	}
}

// ReportRuntime writes a runtime error as "message [line N]".
func (d *Diagnostics) ReportRuntime(err *lang.RuntimeError) {
	if err == nil {
		return
	}
	fmt.Fprintln(d.w, err.Error())
	d.runtimeErrors++
}

// Report dispatches err to ReportSyntax or ReportRuntime. Errors of any
// other kind are written verbatim and counted as runtime failures.
func (d *Diagnostics) Report(err error) {
	if err == nil {
		return
	}
	var list parser.ErrorList
	var single *parser.Error
	var rerr *lang.RuntimeError
	switch {
	case errors.As(err, &list):
		d.ReportSyntax(list)
	case errors.As(err, &single):
		d.ReportSyntax(parser.ErrorList{single})
	case errors.As(err, &rerr):
		d.ReportRuntime(rerr)
	default:
		fmt.Fprintln(d.w, err.Error())
		d.runtimeErrors++
	}
}

// HadSyntaxError reports whether any syntax error was written since the
// last Reset.
func (d *Diagnostics) HadSyntaxError() bool { return d.syntaxErrors > 0 }

// HadRuntimeError reports whether any runtime error was written since the
// last Reset.
func (d *Diagnostics) HadRuntimeError() bool { return d.runtimeErrors > 0 }

// Counts returns the number of syntax and runtime errors reported.
func (d *Diagnostics) Counts() (syntax, runtime int) {
	return d.syntaxErrors, d.runtimeErrors
}

// Reset clears the error flags, as the REPL does between entries.
func (d *Diagnostics) Reset() {
	d.syntaxErrors = 0
	d.runtimeErrors = 0
}
