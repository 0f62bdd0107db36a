package runtime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/shona/lang"
	"github.com/sergev/shona/parser"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shona.yaml")
	t.Setenv("SHONA_TEST_HISTORY", filepath.Join(dir, "hist"))
	body := `
prompt: "shona> "
history_file: ${SHONA_TEST_HISTORY}
log_level: debug
dump_ast: true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path, NewLogger("error", nil))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Prompt != "shona> " {
		t.Fatalf("unexpected prompt %q", cfg.Prompt)
	}
	if cfg.ContinuationPrompt != DefaultConfig().ContinuationPrompt {
		t.Fatalf("unset fields should keep defaults, got %q", cfg.ContinuationPrompt)
	}
	if cfg.HistoryFile != filepath.Join(dir, "hist") {
		t.Fatalf("expected env expansion, got %q", cfg.HistoryFile)
	}
	if cfg.LogLevel != "debug" || !cfg.DumpAST || cfg.DumpTokens {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigMissingFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.HistoryFile != filepath.Join(home, ".shona_history") {
		t.Fatalf("unexpected history path %q", cfg.HistoryFile)
	}

	if _, err := LoadConfig(filepath.Join(home, "nope.yaml"), NewLogger("error", nil)); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}

	if err := os.WriteFile(filepath.Join(home, ConfigFileName), []byte("prompt: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig("", NewLogger("error", nil)); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestDiagnosticsReportDispatch(t *testing.T) {
	var sb strings.Builder
	d := NewDiagnostics(&sb)
	d.Report(nil)
	d.Report(parser.ErrorList{
		{Line: 1, Message: "Unexpected character '@'."},
		{Line: 2, Where: " at end", Message: "Expect ';' after value."},
	})
	d.Report(&parser.Error{Line: 3, Where: " at 'x'", Message: "Invalid assignment target."})
	d.ReportRuntime(nil)
	d.Report(&lang.RuntimeError{Token: parser.Token{Line: 4}, Message: "Operands must be numbers."})

	want := strings.Join([]string{
		"[Line 1] Error : Unexpected character '@'.",
		"[Line 2] Error at end: Expect ';' after value.",
		"[Line 3] Error at 'x': Invalid assignment target.",
		"Operands must be numbers. [line 4]",
		"",
	}, "\n")
	if sb.String() != want {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", sb.String(), want)
	}
	syntax, runtime := d.Counts()
	if syntax != 3 || runtime != 1 {
		t.Fatalf("unexpected counts %d/%d", syntax, runtime)
	}
	d.Reset()
	if d.HadSyntaxError() || d.HadRuntimeError() {
		t.Fatalf("Reset should clear both flags")
	}
}
