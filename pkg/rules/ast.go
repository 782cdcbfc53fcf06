package rules

import (
	"fmt"
	"sort"
)

// Expr is a node in a parsed boolean expression tree. Evaluation resolves
// identifiers through the supplied lookup and never executes anything else,
// which is what makes user-authored rules safe to run.
type Expr interface {
	// Eval computes the expression's value; lookup resolves a node id to
	// its current value.
	Eval(lookup func(id string) bool) bool
	// String renders the expression in normalized form.
	String() string
	// collectVars adds every referenced identifier to the set.
	collectVars(vars map[string]bool)
}

// LiteralExpr is a constant true/false
type LiteralExpr struct {
	Value bool
}

func (e *LiteralExpr) Eval(func(string) bool) bool {
	return e.Value
}

func (e *LiteralExpr) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func (e *LiteralExpr) collectVars(map[string]bool) {}

// RefExpr is a reference to another node's current value
type RefExpr struct {
	Name string
}

func (e *RefExpr) Eval(lookup func(string) bool) bool {
	return lookup(e.Name)
}

func (e *RefExpr) String() string {
	return e.Name
}

func (e *RefExpr) collectVars(vars map[string]bool) {
	vars[e.Name] = true
}

// NotExpr negates its operand
type NotExpr struct {
	Operand Expr
}

func (e *NotExpr) Eval(lookup func(string) bool) bool {
	return !e.Operand.Eval(lookup)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("!%s", e.Operand.String())
}

func (e *NotExpr) collectVars(vars map[string]bool) {
	e.Operand.collectVars(vars)
}

// AndExpr is a logical conjunction
type AndExpr struct {
	Left  Expr
	Right Expr
}

func (e *AndExpr) Eval(lookup func(string) bool) bool {
	return e.Left.Eval(lookup) && e.Right.Eval(lookup)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(%s && %s)", e.Left.String(), e.Right.String())
}

func (e *AndExpr) collectVars(vars map[string]bool) {
	e.Left.collectVars(vars)
	e.Right.collectVars(vars)
}

// OrExpr is a logical disjunction
type OrExpr struct {
	Left  Expr
	Right Expr
}

func (e *OrExpr) Eval(lookup func(string) bool) bool {
	return e.Left.Eval(lookup) || e.Right.Eval(lookup)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(%s || %s)", e.Left.String(), e.Right.String())
}

func (e *OrExpr) collectVars(vars map[string]bool) {
	e.Left.collectVars(vars)
	e.Right.collectVars(vars)
}

// Vars returns the sorted set of identifiers referenced by an expression.
func Vars(e Expr) []string {
	set := make(map[string]bool)
	e.collectVars(set)

	vars := make([]string, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}
