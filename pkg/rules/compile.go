// Package rules compiles textual boolean update rules ("target = expression")
// into evaluable expression trees. Compilation is pure and fails closed:
// either every line is valid and a complete rule set is returned, or the full
// list of line-numbered problems is reported and nothing is accepted.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// reservedWords are math-function names the downstream landscape tooling
// claims for itself; a rule target may not shadow them.
var reservedWords = map[string]bool{
	"sin":   true,
	"cos":   true,
	"tan":   true,
	"log":   true,
	"ln":    true,
	"log10": true,
	"exp":   true,
	"pi":    true,
	"sinh":  true,
	"cosh":  true,
	"tanh":  true,
	"abs":   true,
}

// targetPattern is the allowed alphabet for rule targets.
var targetPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// CompiledRule is one validated update rule: when the network steps, Target's
// next value is Expr evaluated against the current state.
type CompiledRule struct {
	Target string
	Expr   Expr
	Line   int    // 1-based line number in the input
	Source string // original expression text
}

// RuleSet is the full compiled rule collection for one network.
type RuleSet struct {
	Rules    []CompiledRule
	byTarget map[string]*CompiledRule
}

// Rule returns the compiled rule for a target id, if one exists.
func (rs *RuleSet) Rule(target string) (*CompiledRule, bool) {
	r, ok := rs.byTarget[target]
	return r, ok
}

// Targets returns all rule targets in input order.
func (rs *RuleSet) Targets() []string {
	targets := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		targets[i] = r.Target
	}
	return targets
}

// Error is a single line-numbered compilation problem.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ErrorList collects every compilation problem in a rule set so a user sees
// all of them at once instead of fixing one per attempt.
type ErrorList []Error

func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	msgs := make([]string, len(el))
	for i, e := range el {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Compile validates and parses a full set of rule lines. Blank lines are
// skipped but still counted for line numbering. On any problem the returned
// error is an ErrorList covering every line; no partial rule set is returned.
func Compile(lines []string) (*RuleSet, error) {
	var errs ErrorList

	rs := &RuleSet{
		Rules:    make([]CompiledRule, 0, len(lines)),
		byTarget: make(map[string]*CompiledRule, len(lines)),
	}
	seen := make(map[string]int, len(lines))

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		target, exprText, ok := strings.Cut(line, "=")
		if !ok {
			errs = append(errs, Error{lineNo, "missing '=' separator"})
			continue
		}

		target = strings.TrimSpace(target)
		exprText = strings.TrimSpace(exprText)

		if target == "" {
			errs = append(errs, Error{lineNo, "empty rule target"})
			continue
		}
		if exprText == "" {
			errs = append(errs, Error{lineNo, "empty rule expression"})
			continue
		}

		if !targetPattern.MatchString(target) {
			errs = append(errs, Error{lineNo, fmt.Sprintf("target %q contains invalid characters (only letters, digits and underscore allowed)", target)})
			continue
		}

		if reservedWords[strings.ToLower(target)] {
			errs = append(errs, Error{lineNo, fmt.Sprintf("target %q collides with a reserved function name", target)})
			continue
		}

		if firstLine, dup := seen[target]; dup {
			errs = append(errs, Error{lineNo, fmt.Sprintf("target %q already defined on line %d", target, firstLine)})
			continue
		}
		seen[target] = lineNo

		expr, err := ParseExpression(exprText)
		if err != nil {
			errs = append(errs, Error{lineNo, fmt.Sprintf("invalid expression: %v", err)})
			continue
		}

		rs.Rules = append(rs.Rules, CompiledRule{
			Target: target,
			Expr:   expr,
			Line:   lineNo,
			Source: exprText,
		})
	}

	// Cross-reference check runs globally after all lines are parsed so
	// forward references within the rule set are legal.
	for _, rule := range rs.Rules {
		var undefined []string
		for _, ref := range Vars(rule.Expr) {
			if _, defined := seen[ref]; !defined {
				undefined = append(undefined, ref)
			}
		}
		if len(undefined) > 0 {
			sort.Strings(undefined)
			errs = append(errs, Error{rule.Line, fmt.Sprintf("undefined variable(s): %s", strings.Join(undefined, ", "))})
		}
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Line < errs[j].Line })
		return nil, errs
	}

	for i := range rs.Rules {
		rs.byTarget[rs.Rules[i].Target] = &rs.Rules[i]
	}
	return rs, nil
}
