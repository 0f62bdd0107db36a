package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a node in parenthesized prefix form, for example
// "1 + 2 * 3" becomes "(+ 1 (* 2 3))".
func Print(node Node) string {
	var sb strings.Builder
	writeNode(&sb, node)
	return sb.String()
}

// PrintProgram renders each statement of the program on its own line.
func PrintProgram(prog *Program) string {
	if prog == nil {
		return ""
	}
	lines := make([]string, len(prog.Stmts))
	for i, stmt := range prog.Stmts {
		lines[i] = Print(stmt)
	}
	return strings.Join(lines, "\n")
}

func writeNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *LiteralExpr:
		sb.WriteString(literalString(n.Value))
	case *VariableExpr:
		sb.WriteString(n.Name.Lexeme)
	case *AssignExpr:
		parenthesize(sb, "= "+n.Name.Lexeme, n.Value)
	case *LogicalExpr:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *BinaryExpr:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *UnaryExpr:
		parenthesize(sb, n.Op.Lexeme, n.Right)
	case *GroupingExpr:
		parenthesize(sb, "group", n.Inner)
	case *ConditionalExpr:
		parenthesize(sb, "?:", n.Cond, n.Then, n.Else)
	case *ExpressionStmt:
		parenthesize(sb, ";", n.Expr)
	case *PrintStmt:
		parenthesize(sb, "dhinda", n.Expr)
	case *VarStmt:
		if n.Init == nil {
			parenthesize(sb, "cheng "+n.Name.Lexeme)
			return
		}
		parenthesize(sb, "cheng "+n.Name.Lexeme, n.Init)
	case *BlockStmt:
		nodes := make([]Node, len(n.Stmts))
		for i, stmt := range n.Stmts {
			nodes[i] = stmt
		}
		parenthesize(sb, "block", nodes...)
	case *IfStmt:
		if n.Else == nil {
			parenthesize(sb, "dai", n.Cond, n.Then)
			return
		}
		parenthesize(sb, "dai", n.Cond, n.Then, n.Else)
	case *WhileStmt:
		parenthesize(sb, "apo", n.Cond, n.Body)
	case nil:
		sb.WriteString("<nil>")
	default:
		fmt.Fprintf(sb, "<%T>", node)
	}
}

func parenthesize(sb *strings.Builder, name string, nodes ...Node) {
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, n := range nodes {
		sb.WriteByte(' ')
		writeNode(sb, n)
	}
	sb.WriteByte(')')
}

func literalString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "hapana"
	case bool:
		if val {
			return "chokwadi"
		}
		return "kunyepa"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprint(val)
	}
}
