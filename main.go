package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oarkflow/log"
	"github.com/urfave/cli/v2"

	"github.com/sergev/shona/runtime"
)

// Exit statuses follow sysexits.h.
const (
	exitOK      = 0
	exitUsage   = 64
	exitSyntax  = 65
	exitInput   = 66
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	err := app.Run(args)
	if err == nil {
		return exitOK
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintf(stderr, "shona: %s\n", msg)
		}
		return ec.ExitCode()
	}
	fmt.Fprintf(stderr, "shona: %v\n", err)
	return exitUsage
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "shona",
		Usage:     "run Shona scripts or start an interactive session",
		ArgsUsage: "[script]",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Script to run; - reads the script from stdin",
			},
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "Print the token stream before running",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "Print the parsed program before running",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the YAML config file (default $HOME/" + runtime.ConfigFileName + ")",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "error",
				Usage: "Log level: debug, info, warn or error",
			},
		},
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return action(c, stdin, stdout, stderr)
		},
	}
}

func action(c *cli.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	script := c.String("file")
	switch {
	case c.NArg() > 1, script != "" && c.NArg() > 0:
		return cli.Exit("usage: shona [--file path] [script]", exitUsage)
	case script == "":
		script = c.Args().First()
	}

	cfg, err := runtime.LoadConfig(c.String("config"), runtime.NewLogger(c.String("log-level"), stderr))
	if err != nil {
		return cli.Exit(err.Error(), exitInput)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("tokens") {
		cfg.DumpTokens = c.Bool("tokens")
	}
	if c.IsSet("ast") {
		cfg.DumpAST = c.Bool("ast")
	}

	logger := runtime.NewLogger(cfg.LogLevel, stderr)
	interp := runtime.New(runtime.Options{
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger,
		DumpTokens: cfg.DumpTokens,
		DumpAST:    cfg.DumpAST,
	})

	if script == "" {
		logger.Debug().Str("prompt", cfg.Prompt).Str("history", cfg.HistoryFile).Msg("starting repl")
		newREPL(interp, cfg, stdin, stdout, stderr).run()
		return nil
	}
	return runScript(interp, logger, script, stdin)
}

func runScript(interp *runtime.Interpreter, logger *log.Logger, script string, stdin io.Reader) error {
	var err error
	if script == "-" {
		err = runtime.EvaluateReader(interp, stdin)
	} else {
		err = runtime.EvaluateFile(interp, script)
	}
	switch {
	case errors.Is(err, runtime.ErrInput):
		logger.Debug().Err(err).Str("script", script).Msg("cannot read script")
		return cli.Exit(err.Error(), exitInput)
	case interp.Diagnostics.HadSyntaxError():
		return cli.Exit("", exitSyntax)
	case interp.Diagnostics.HadRuntimeError():
		return cli.Exit("", exitRuntime)
	}
	return nil
}
