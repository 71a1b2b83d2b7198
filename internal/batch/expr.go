package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// ExprFilter compiles and evaluates expr-lang expressions against messages.
type ExprFilter struct {
	expression string
	program    *vm.Program
	loc        *time.Location
}

// NewExprFilter creates a filter for the given expression. Hour and weekday
// are evaluated in loc (time.Local if nil).
func NewExprFilter(expression string, loc *time.Location) (*ExprFilter, error) {
	if loc == nil {
		loc = time.Local
	}
	f := &ExprFilter{expression: expression, loc: loc}
	if err := f.compile(); err != nil {
		return nil, err
	}
	return f, nil
}

// compile compiles the expression with the expected environment.
func (f *ExprFilter) compile() error {
	// Syntax: text contains "lol", name in ["Alice", "Bob"], likes >= 2
	program, err := expr.Compile(f.expression,
		expr.Env(buildSampleEnv()),
		expr.AsBool(),
	)
	if err != nil {
		return fmt.Errorf("compile expression: %w", err)
	}

	f.program = program
	return nil
}

// Match evaluates the expression against a message.
func (f *ExprFilter) Match(m *models.Message) (bool, error) {
	result, err := expr.Run(f.program, buildEnvFromMessage(m, f.loc))
	if err != nil {
		return false, fmt.Errorf("evaluate expression: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression did not return bool: got %T", result)
	}

	return matched, nil
}

// Expression returns the original expression string.
func (f *ExprFilter) Expression() string {
	return f.expression
}

// buildSampleEnv creates a sample environment for expression compilation.
func buildSampleEnv() map[string]any {
	return map[string]any{
		"name":        "",
		"user_id":     "",
		"text":        "",
		"length":      0,
		"likes":       0,
		"attachments": 0,
		"hour":        0,
		"weekday":     "",
		"created_at":  int64(0),
		"system":      false,
		"sender_type": "",
	}
}

// buildEnvFromMessage creates an evaluation environment from a message.
func buildEnvFromMessage(m *models.Message, loc *time.Location) map[string]any {
	t := m.Time(loc)
	return map[string]any{
		"name":        m.Name,
		"user_id":     m.UserID,
		"text":        m.Text,
		"length":      m.Length(),
		"likes":       m.Likes(),
		"attachments": len(m.Attachments),
		"hour":        t.Hour(),
		"weekday":     strings.ToLower(t.Weekday().String()),
		"created_at":  m.CreatedAt,
		"system":      m.System,
		"sender_type": string(m.SenderType),
	}
}
