package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/sergev/shona/parser"
	"github.com/sergev/shona/runtime"
)

type repl struct {
	interp *runtime.Interpreter
	cfg    runtime.Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newREPL(interp *runtime.Interpreter, cfg runtime.Config, in io.Reader, out, errOut io.Writer) *repl {
	return &repl{interp: interp, cfg: cfg, in: in, out: out, errOut: errOut}
}

func (r *repl) run() {
	if !isInteractive(r.in) {
		r.runBuffered(bufio.NewReader(r.in))
		return
	}
	r.runInteractive()
}

// complete reports whether src can be handed to the interpreter. Input
// that ends inside a block, string or comment waits for more lines.
func complete(src string) bool {
	if isCommand(src) {
		return true
	}
	_, err := parser.Parse(src)
	return !parser.IsIncomplete(err)
}

func isCommand(src string) bool {
	trimmed := strings.TrimSpace(src)
	return strings.HasPrefix(trimmed, ":ast") || strings.HasPrefix(trimmed, ":tokens")
}

// eval runs one complete entry. Definitions stay in the global
// environment; error flags are cleared for the next entry.
func (r *repl) eval(src string) {
	defer r.interp.Diagnostics.Reset()
	trimmed := strings.TrimSpace(src)
	switch {
	case trimmed == "":
		return
	case strings.HasPrefix(trimmed, ":ast"):
		r.interp.AST(strings.TrimPrefix(trimmed, ":ast"))
	case strings.HasPrefix(trimmed, ":tokens"):
		r.interp.Tokens(strings.TrimPrefix(trimmed, ":tokens"))
	default:
		r.interp.Run(src)
	}
}

func (r *repl) runBuffered(reader *bufio.Reader) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if buffer.Len() == 0 && line == "" {
					return
				}
			} else {
				fmt.Fprintf(r.errOut, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(line)
		src := buffer.String()
		if !complete(src) && !errors.Is(err, io.EOF) {
			continue
		}
		buffer.Reset()
		r.eval(src)
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func (r *repl) runInteractive() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if path := r.cfg.HistoryFile; path != "" {
		if f, err := os.Open(path); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := r.cfg.Prompt
		if buffer.Len() > 0 {
			prompt = r.cfg.ContinuationPrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(r.out)
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(r.out)
				return
			default:
				fmt.Fprintf(r.errOut, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if !complete(src) {
			continue
		}
		buffer.Reset()
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			state.AppendHistory(trimmed)
		}
		r.eval(src)
	}
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
