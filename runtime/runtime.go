package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oarkflow/log"

	"github.com/sergev/shona/lang"
	"github.com/sergev/shona/parser"
)

// ErrInput reports a script that could not be read.
var ErrInput = errors.New("cannot read input")

// Options configures an Interpreter. Nil writers discard their output and
// a nil Logger reports errors only, to os.Stderr.
type Options struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *log.Logger
	DumpTokens bool
	DumpAST    bool
}

// Interpreter drives source text through scanning, parsing and execution,
// reporting diagnostics along the way. Global bindings persist between
// calls to Run.
type Interpreter struct {
	Evaluator   *lang.Evaluator
	Diagnostics *Diagnostics

	out        io.Writer
	logger     *log.Logger
	dumpTokens bool
	dumpAST    bool
}

// New constructs an interpreter with a fresh global environment.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger("error", os.Stderr)
	}
	return &Interpreter{
		Evaluator:   lang.NewEvaluator(out),
		Diagnostics: NewDiagnostics(opts.Stderr),
		out:         out,
		logger:      logger,
		dumpTokens:  opts.DumpTokens,
		dumpAST:     opts.DumpAST,
	}
}

// Run scans, parses and executes src. Syntax errors are reported and the
// statements that did parse still run; a runtime error stops the run. The
// returned error joins whatever was reported.
func (in *Interpreter) Run(src string) error {
	start := time.Now()
	tokens, lexErrs := parser.Scan(src)
	in.logger.Debug().Int("tokens", len(tokens)).Int("errors", len(lexErrs)).Dur("elapsed", time.Since(start)).Msg("scan")
	if in.dumpTokens {
		in.writeTokens(tokens)
	}

	start = time.Now()
	prog, syntaxErr := parser.ParseScanned(tokens, lexErrs)
	in.logger.Debug().Int("statements", len(prog.Stmts)).Dur("elapsed", time.Since(start)).Msg("parse")
	if syntaxErr != nil {
		in.logger.Warn().Err(syntaxErr).Msg("syntax errors")
		in.Diagnostics.Report(syntaxErr)
	}
	if in.dumpAST {
		in.writeAST(prog)
	}

	start = time.Now()
	runErr := in.Evaluator.Run(prog)
	in.logger.Debug().Dur("elapsed", time.Since(start)).Msg("execute")
	if runErr != nil {
		in.logger.Warn().Err(runErr).Msg("runtime error")
		in.Diagnostics.Report(runErr)
	}
	return errors.Join(syntaxErr, runErr)
}

// Tokens writes the token dump of src to the output sink, one token per
// line. Lexical errors are reported.
func (in *Interpreter) Tokens(src string) error {
	tokens, lexErrs := parser.Scan(src)
	in.writeTokens(tokens)
	if err := lexErrs.Err(); err != nil {
		in.Diagnostics.Report(err)
		return err
	}
	return nil
}

// AST writes the parenthesized form of every statement of src that parsed.
// Syntax errors are reported.
func (in *Interpreter) AST(src string) error {
	prog, err := parser.Parse(src)
	in.writeAST(prog)
	if err != nil {
		in.Diagnostics.Report(err)
	}
	return err
}

func (in *Interpreter) writeTokens(tokens []parser.Token) {
	for _, tok := range tokens {
		fmt.Fprintln(in.out, tok.String())
	}
}

func (in *Interpreter) writeAST(prog *parser.Program) {
	if text := parser.PrintProgram(prog); text != "" {
		fmt.Fprintln(in.out, text)
	}
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			// keep the newline so line numbers match the file
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateString runs src in the interpreter.
func EvaluateString(in *Interpreter, src string) error {
	return in.Run(src)
}

// EvaluateReader consumes all source from r and runs it.
func EvaluateReader(in *Interpreter, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	return in.Run(string(data))
}

// EvaluateFile loads and runs a script file, allowing a #! first line.
func EvaluateFile(in *Interpreter, path string) error {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrInput, path, err)
	}
	in.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded script")
	return in.Run(string(data))
}
