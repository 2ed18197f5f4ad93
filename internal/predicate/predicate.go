// Package predicate implements the small boolean expression language used
// to override the oracle's default verdict rule (spec.md §6). A predicate
// is evaluated against a Record{stdout, stderr, exit_code} and yields
// Reproduces (true) or Error (false).
//
// Grammar:
//
//	expr       := orExpr
//	orExpr     := andExpr ( "OR" andExpr )*
//	andExpr    := unary ( "AND" unary )*
//	unary      := "NOT" unary | primary
//	primary    := "(" expr ")" | comparison
//	comparison := field op value
//	field      := "stdout" | "stderr" | "exit_code"
//	op         := "==" | "contains" | "~="
//	value      := quoted string | bare integer (exit_code only)
package predicate

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is the subject's observed behavior, evaluated against a
// predicate expression.
type Record struct {
	Stdout   string
	Stderr   string
	ExitCode *int
}

// Expr is a parsed predicate expression.
type Expr interface {
	Eval(r Record) bool
}

// Parse compiles a predicate expression string. An empty string is
// rejected by the caller before reaching here — the oracle treats an
// unset predicate as "use the default verdict rule", not as an
// always-true expression.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("predicate: unexpected trailing token %q", p.toks[p.pos].text)
	}
	return expr, nil
}

// --- AST ---

type notExpr struct{ inner Expr }

func (e *notExpr) Eval(r Record) bool { return !e.inner.Eval(r) }

type andExpr struct{ left, right Expr }

func (e *andExpr) Eval(r Record) bool { return e.left.Eval(r) && e.right.Eval(r) }

type orExpr struct{ left, right Expr }

func (e *orExpr) Eval(r Record) bool { return e.left.Eval(r) || e.right.Eval(r) }

type comparison struct {
	field string
	op    string
	value string
}

func (c *comparison) Eval(r Record) bool {
	if c.field == "exit_code" {
		return c.evalExitCode(r)
	}

	var field string
	switch c.field {
	case "stdout":
		field = r.Stdout
	case "stderr":
		field = r.Stderr
	}

	switch c.op {
	case "==":
		return field == c.value
	case "contains":
		return strings.Contains(field, c.value)
	case "~=":
		return strings.Contains(strings.ToLower(field), strings.ToLower(c.value))
	default:
		return false
	}
}

func (c *comparison) evalExitCode(r Record) bool {
	if r.ExitCode == nil {
		return false
	}
	want, err := strconv.Atoi(c.value)
	if err != nil {
		return false
	}
	switch c.op {
	case "==":
		return *r.ExitCode == want
	default:
		return false
	}
}
