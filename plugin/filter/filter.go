// Package filter evaluates CEL filter expressions against study units.
// Filters are user-supplied list predicates, e.g.
//
//	difficulty >= 4 && incidence == "high"
//	!studied || confidence <= 2
package filter

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Env declares the variables a unit filter may reference.
func Env() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("difficulty", cel.IntType),
		cel.Variable("incidence", cel.StringType),
		cel.Variable("confidence", cel.IntType),
		cel.Variable("studied", cel.BoolType),
		cel.Variable("topic", cel.StringType),
		cel.Variable("discipline", cel.StringType),
	)
}

// Filter is a compiled unit predicate.
type Filter struct {
	program cel.Program
}

// Parse compiles the expression. An empty expression is rejected.
func Parse(env *cel.Env, expression string) (*Filter, error) {
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter %q must evaluate to a boolean", expression)
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter program: %w", err)
	}
	return &Filter{program: program}, nil
}

// Match evaluates the filter against one unit's fields.
func (f *Filter) Match(fields map[string]any) (bool, error) {
	out, _, err := f.program.Eval(fields)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter did not evaluate to a boolean")
	}
	return matched, nil
}
