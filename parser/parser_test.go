package parser

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return prog
}

func parseErrors(t *testing.T, src string) (*Program, ErrorList) {
	t.Helper()
	prog, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q) expected errors", src)
	}
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %T", err)
	}
	return prog, list
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(; (+ 1 (* 2 3)))"},
		{"(1 + 2) * 3;", "(; (* (group (+ 1 2)) 3))"},
		{"1 - 2 - 3;", "(; (- (- 1 2) 3))"},
		{"8 / 4 / 2;", "(; (/ (/ 8 4) 2))"},
		{"-1 < 2 == chokwadi;", "(; (== (< (- 1) 2) chokwadi))"},
		{"!!kunyepa;", "(; (! (! kunyepa)))"},
		{"a kana b ne c;", "(; (kana a (ne b c)))"},
		{"a ne b kana c ne d;", "(; (kana (ne a b) (ne c d)))"},
		{"1 != 2 >= 3;", "(; (!= 1 (>= 2 3)))"},
		{"a = b = 3;", "(; (= a (= b 3)))"},
		{"a = 1, b = 2;", "(; (, (= a 1) (= b 2)))"},
		{"1, 2, 3;", "(; (, (, 1 2) 3))"},
		{"a ? b : c ? d : e;", "(; (?: a b (?: c d e)))"},
		{"a ? 1, 2 : 3;", "(; (?: a (, 1 2) 3))"},
		{"x = a kana b ? 1 : 2;", "(; (= x (?: (kana a b) 1 2)))"},
		{"\"hi\" + hapana;", "(; (+ \"hi\" hapana))"},
		{"1.5;", "(; 1.5)"},
	}
	for _, tt := range tests {
		prog := mustParse(t, tt.src)
		if len(prog.Stmts) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.src, len(prog.Stmts))
		}
		if got := Print(prog.Stmts[0]); got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestParseStatements(t *testing.T) {
	src := `
cheng a = 1;
cheng b;
dhinda a;
{ cheng a = 2; dhinda a; }
dai (a) dhinda 1; pamwe dhinda 2;
apo (a < 3) a = a + 1;
`
	prog := mustParse(t, src)
	want := []string{
		"(cheng a 1)",
		"(cheng b)",
		"(dhinda a)",
		"(block (cheng a 2) (dhinda a))",
		"(dai a (dhinda 1) (dhinda 2))",
		"(apo (< a 3) (; (= a (+ a 1))))",
	}
	if len(prog.Stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(prog.Stmts))
	}
	for i, w := range want {
		if got := Print(prog.Stmts[i]); got != w {
			t.Errorf("statement %d: got %s, want %s", i, got, w)
		}
	}

	block, ok := prog.Stmts[3].(*BlockStmt)
	if !ok {
		t.Fatalf("expected BlockStmt, got %T", prog.Stmts[3])
	}
	if _, ok := block.Stmts[0].(*VarStmt); !ok {
		t.Fatalf("expected VarStmt in block, got %T", block.Stmts[0])
	}
	if block.Line() != 5 {
		t.Errorf("expected block on line 5, got %d", block.Line())
	}
}

func TestParseDanglingElseBindsNearest(t *testing.T) {
	prog := mustParse(t, "dai (a) dai (b) dhinda 1; pamwe dhinda 2;")
	outer, ok := prog.Stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", prog.Stmts[0])
	}
	if outer.Else != nil {
		t.Fatalf("expected outer if to have no else branch")
	}
	inner, ok := outer.Then.(*IfStmt)
	if !ok {
		t.Fatalf("expected nested IfStmt, got %T", outer.Then)
	}
	if inner.Else == nil {
		t.Fatalf("expected else to bind to inner if")
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	prog := mustParse(t, "chin (cheng i = 0; i < 3; i = i + 1) dhinda i;")
	want := "(block (cheng i 0) (apo (< i 3) (block (dhinda i) (; (= i (+ i 1))))))"
	if got := Print(prog.Stmts[0]); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	block := prog.Stmts[0].(*BlockStmt)
	loop, ok := block.Stmts[1].(*WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", block.Stmts[1])
	}
	if _, ok := loop.Body.(*BlockStmt); !ok {
		t.Fatalf("expected loop body to be a block, got %T", loop.Body)
	}
}

func TestParseForWithEmptyClauses(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"chin (;;) dhinda 1;", "(block (apo chokwadi (dhinda 1)))"},
		{"chin (i = 0; i < 2;) dhinda i;", "(block (; (= i 0)) (apo (< i 2) (dhinda i)))"},
		{"chin (; kunyepa; i = i + 1) {}", "(block (apo kunyepa (block (block) (; (= i (+ i 1))))))"},
	}
	for _, tt := range tests {
		prog := mustParse(t, tt.src)
		if got := Print(prog.Stmts[0]); got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestParseRecoversAfterBadStatement(t *testing.T) {
	prog, errs := parseErrors(t, "dhinda ;\ndhinda 2;")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one syntax error, got %d: %v", len(errs), errs)
	}
	if got := errs[0].Error(); got != "[Line 1] Error at ';': Expect expression." {
		t.Fatalf("unexpected error text %q", got)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected well-formed statement to survive, got %d statements", len(prog.Stmts))
	}
	if got := Print(prog.Stmts[0]); got != "(dhinda 2)" {
		t.Fatalf("unexpected surviving statement %s", got)
	}
}

func TestParseRecoversInsideBlock(t *testing.T) {
	prog, errs := parseErrors(t, "{ dhinda ; dhinda 1; }\ndhinda 2;")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one syntax error, got %d: %v", len(errs), errs)
	}
	if got := errs[0].Error(); got != "[Line 1] Error at ';': Expect expression." {
		t.Fatalf("unexpected error text %q", got)
	}
	if got := PrintProgram(prog); got != "(block (dhinda 1))\n(dhinda 2)" {
		t.Fatalf("unexpected program %q", got)
	}

	prog, errs = parseErrors(t, "apo (chokwadi) {\n  dhinda );\n  { cheng = 3; dhinda 4; }\n}")
	if len(errs) != 2 {
		t.Fatalf("expected two syntax errors, got %v", errs)
	}
	if got := PrintProgram(prog); got != "(apo chokwadi (block (block (dhinda 4))))" {
		t.Fatalf("unexpected program %q", got)
	}

	// an error right before the closing brace keeps the block intact
	prog, errs = parseErrors(t, "{ dhinda 1; dhinda }")
	if len(errs) != 1 || errs[0].Where != " at '}'" {
		t.Fatalf("expected one error at '}', got %v", errs)
	}
	if got := PrintProgram(prog); got != "(block (dhinda 1))" {
		t.Fatalf("unexpected program %q", got)
	}
}

func TestParseRecoversAtStatementKeyword(t *testing.T) {
	prog, errs := parseErrors(t, "cheng = 1 dhinda 3; cheng b = 2;")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs[0].Message != "Expect variable name." {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected two recovered statements, got %d", len(prog.Stmts))
	}
}

func TestParseErrorAtEnd(t *testing.T) {
	_, errs := parseErrors(t, "dhinda 1")
	if got := errs[0].Error(); got != "[Line 1] Error at end: Expect ';' after value." {
		t.Fatalf("unexpected error text %q", got)
	}
	if !IsIncomplete(errs) {
		t.Fatalf("expected error at end to be incomplete")
	}

	_, errs = parseErrors(t, "dai (chokwadi) {\n dhinda 1;\n")
	if errs[0].Message != "Expect '}' after block." || !errs[0].Incomplete {
		t.Fatalf("expected incomplete block error, got %+v", errs[0])
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	prog, errs := parseErrors(t, "1 + 2 = 3;\ndhinda 4;")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if got := errs[0].Error(); got != "[Line 1] Error at '=': Invalid assignment target." {
		t.Fatalf("unexpected error %q", got)
	}
	if errs[0].Incomplete {
		t.Fatalf("invalid assignment target should not be incomplete")
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected both statements to be kept, got %d", len(prog.Stmts))
	}

	_, errs = parseErrors(t, "(a) = 1;")
	if errs[0].Message != "Invalid assignment target." {
		t.Fatalf("grouped variable must not be assignable, got %v", errs)
	}
}

func TestParseReservedKeywordsHaveNoRules(t *testing.T) {
	for _, kw := range []string{"kirasi", "basa", "mubereki", "ino", "dzoka"} {
		_, errs := parseErrors(t, kw+";")
		if errs[0].Message != "Expect expression." {
			t.Errorf("%s: expected 'Expect expression.', got %q", kw, errs[0].Message)
		}
	}
}

func TestParseCollectsLexAndSyntaxErrorsByLine(t *testing.T) {
	prog, errs := parseErrors(t, "dhinda 1;\ndhinda );\ncheng x = 2 @;\ndhinda x;")
	if len(errs) != 2 {
		t.Fatalf("expected two errors, got %v", errs)
	}
	if errs[0].Line != 2 || errs[1].Line != 3 {
		t.Fatalf("expected errors ordered by line, got %v", errs)
	}
	if !strings.Contains(errs[1].Message, "Unexpected character") {
		t.Fatalf("expected lexical error on line 3, got %v", errs[1])
	}
	if len(prog.Stmts) != 3 {
		t.Fatalf("expected three statements, got %d", len(prog.Stmts))
	}
}

func TestParseTokensAppendsMissingEOF(t *testing.T) {
	tokens := []Token{
		{Type: TokenDhinda, Lexeme: "dhinda", Line: 1},
		{Type: TokenNumber, Lexeme: "1", Literal: 1.0, Line: 1},
		{Type: TokenSemicolon, Lexeme: ";", Line: 1},
	}
	prog, err := ParseTokens(tokens)
	if err != nil {
		t.Fatalf("ParseTokens returned error: %v", err)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}

	prog, err = ParseTokens(nil)
	if err != nil || len(prog.Stmts) != 0 {
		t.Fatalf("expected empty program, got %v err=%v", prog.Stmts, err)
	}
}

func TestNodeLines(t *testing.T) {
	prog := mustParse(t, "cheng a =\n1;\n\ndhinda\na;")
	if got := prog.Stmts[0].Line(); got != 1 {
		t.Errorf("expected var on line 1, got %d", got)
	}
	printStmt := prog.Stmts[1].(*PrintStmt)
	if printStmt.Line() != 4 || printStmt.Expr.Line() != 5 {
		t.Errorf("unexpected print lines %d/%d", printStmt.Line(), printStmt.Expr.Line())
	}
}
