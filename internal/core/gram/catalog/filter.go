package catalog

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Filterable fields.
const (
	FieldName   = "name"
	FieldSize   = "size"
	FieldFilled = "filled"
)

// FilterError reports a filter expression that cannot be parsed or evaluated.
type FilterError struct {
	Filter string
	Err    error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("catalog: invalid filter %q: %v", e.Filter, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}

// predicate reports whether a puzzle matches a compiled filter.
type predicate func(Puzzle) bool

// Declarations returns the field declarations for puzzle filtering.
func Declarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(FieldName, filtering.TypeString),
		filtering.DeclareIdent(FieldSize, filtering.TypeInt),
		filtering.DeclareIdent(FieldFilled, filtering.TypeInt),
	)
}

func compileFilter(filterStr string) (predicate, error) {
	if strings.TrimSpace(filterStr) == "" {
		return func(Puzzle) bool { return true }, nil
	}

	decls, err := Declarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, &FilterError{Filter: filterStr, Err: err}
	}
	match, err := compileExpr(filter.CheckedExpr.GetExpr())
	if err != nil {
		return nil, &FilterError{Filter: filterStr, Err: err}
	}
	return match, nil
}

func compileExpr(e *expr.Expr) (predicate, error) {
	if e == nil {
		return func(Puzzle) bool { return true }, nil
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return compileCall(kind.CallExpr)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func compileCall(call *expr.Expr_Call) (predicate, error) {
	switch call.Function {
	case filtering.FunctionAnd, "_&&_":
		left, right, err := compileOperands(call.Args)
		if err != nil {
			return nil, err
		}
		return func(p Puzzle) bool { return left(p) && right(p) }, nil
	case filtering.FunctionOr, "_||_":
		left, right, err := compileOperands(call.Args)
		if err != nil {
			return nil, err
		}
		return func(p Puzzle) bool { return left(p) || right(p) }, nil
	case filtering.FunctionNot:
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := compileExpr(call.Args[0])
		if err != nil {
			return nil, err
		}
		return func(p Puzzle) bool { return !inner(p) }, nil
	case filtering.FunctionEquals,
		filtering.FunctionNotEquals,
		filtering.FunctionLessThan,
		filtering.FunctionLessEquals,
		filtering.FunctionGreaterThan,
		filtering.FunctionGreaterEquals:
		return compileComparison(call.Function, call.Args)
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func compileOperands(args []*expr.Expr) (predicate, predicate, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("logical operator requires 2 arguments")
	}
	left, err := compileExpr(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := compileExpr(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func compileComparison(op string, args []*expr.Expr) (predicate, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}
	value, err := extractConstant(args[1])
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldName:
		want, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %s expects a string, got %T", field, value)
		}
		return func(p Puzzle) bool { return compareOrdered(op, p.Name, want) }, nil
	case FieldSize, FieldFilled:
		want, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("field %s expects an integer, got %T", field, value)
		}
		get := Puzzle.Size
		if field == FieldFilled {
			get = Puzzle.Filled
		}
		return func(p Puzzle) bool { return compareOrdered(op, int64(get(p)), want) }, nil
	default:
		return nil, fmt.Errorf("unknown field: %s", field)
	}
}

func compareOrdered[T int64 | string](op string, got, want T) bool {
	switch op {
	case filtering.FunctionEquals:
		return got == want
	case filtering.FunctionNotEquals:
		return got != want
	case filtering.FunctionLessThan:
		return got < want
	case filtering.FunctionLessEquals:
		return got <= want
	case filtering.FunctionGreaterThan:
		return got > want
	case filtering.FunctionGreaterEquals:
		return got >= want
	default:
		return false
	}
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractConstant(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	kind, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return nil, fmt.Errorf("expected constant, got %T", e.ExprKind)
	}
	switch c := kind.ConstExpr.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return c.StringValue, nil
	case *expr.Constant_Int64Value:
		return c.Int64Value, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", c)
	}
}
