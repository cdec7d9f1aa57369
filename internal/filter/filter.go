// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package filter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// ErrEmptyExpression is returned by Compile for a blank expression.
var ErrEmptyExpression = errors.New("filter expression is empty")

// Filter evaluates a compiled CEL expression against recommendation candidates.
type Filter struct {
	expr   string
	prg    cel.Program
	logger zerolog.Logger
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.MapType(cel.StringType, cel.DynType)),
	)
}

// Compile parses and type-checks expr. The expression must evaluate to a bool.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Compile(expr string, logger zerolog.Logger) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyExpression
	}

	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expr, issues.Err())
	}

	// Map values are dyn, so most comparisons type-check as bool; a dyn result
	// is checked again at evaluation time.
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("filter %q must return bool, got %s", expr, out)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build filter program: %w", err)
	}

	return &Filter{expr: expr, prg: prg, logger: logger}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expr
}

// Keep reports whether c passes the filter. Evaluation errors keep the
// candidate.
func (f *Filter) Keep(ctx context.Context, c models.Candidate) bool {
	ok, err := f.Eval(c)
	if err != nil {
		logging.CtxLogger(ctx, f.logger).Warn().
			Err(err).
			Str("expression", f.expr).
			Int("item_id", c.ItemID).
			Msg("Candidate filter evaluation failed, keeping candidate")
		return true
	}
	return ok
}

// Eval evaluates the expression for c.
func (f *Filter) Eval(c models.Candidate) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"item": candidateInput(c),
	})
	if err != nil {
		return false, fmt.Errorf("eval filter: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter must return bool, got %T", out.Value())
	}
	return result, nil
}

func candidateInput(c models.Candidate) map[string]any {
	return map[string]any{
		"id":     c.ItemID,
		"title":  c.Title,
		"genre":  c.Genre,
		"reason": c.Reason,
		"score":  c.Score,
		"source": string(c.Source),
	}
}
