package runtime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrRepeatTooLong  = errors.New("repeated string too long")
)

// MaxRepeatLen bounds the byte length a string repetition may produce.
const MaxRepeatLen = 1 << 24

// OperationError reports an operator applied to a pair of kinds the legality
// table rejects.
type OperationError struct {
	Op    ast.Operator
	Left  Kind
	Right Kind
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operator %s is not defined for %s and %s", e.Op, e.Left, e.Right)
}

type operandPair struct {
	left  Kind
	right Kind
}

func relationsTo(result Kind, extra map[ast.Operator]Kind) map[ast.Operator]Kind {
	for _, rel := range ast.Relations {
		extra[rel] = result
	}
	return extra
}

// legality is the operator table shared by the checker, the interpreter and
// the code generator. Pairs and operators missing from it are illegal.
var legality = map[operandPair]map[ast.Operator]Kind{
	{KindInt, KindInt}: relationsTo(KindBool, map[ast.Operator]Kind{
		ast.OpAdd: KindInt, ast.OpSub: KindInt, ast.OpMul: KindInt, ast.OpDiv: KindInt,
	}),
	{KindInt, KindBool}:  {ast.OpAdd: KindBool, ast.OpSub: KindBool},
	{KindBool, KindInt}:  {ast.OpAdd: KindBool, ast.OpSub: KindBool},
	{KindBool, KindBool}: {ast.OpAdd: KindBool, ast.OpSub: KindBool},
	{KindString, KindInt}: {
		ast.OpAdd: KindString, ast.OpMul: KindString,
	},
	{KindString, KindBool}: {ast.OpAdd: KindString},
	{KindString, KindString}: relationsTo(KindBool, map[ast.Operator]Kind{
		ast.OpAdd: KindString,
	}),
}

// ResultKind reports the kind produced by left op right, or false when the
// combination is illegal.
func ResultKind(op ast.Operator, left, right Kind) (Kind, bool) {
	ops, ok := legality[operandPair{left, right}]
	if !ok {
		return 0, false
	}
	result, ok := ops[op]
	return result, ok
}

// Apply evaluates left op right. Callers are expected to have checked the
// program, so an OperationError indicates a checker bug.
func Apply(op ast.Operator, left, right Value) (Value, error) {
	if _, ok := ResultKind(op, left.Kind(), right.Kind()); !ok {
		return nil, &OperationError{Op: op, Left: left.Kind(), Right: right.Kind()}
	}
	switch l := left.(type) {
	case IntValue:
		if r, ok := right.(IntValue); ok {
			return applyInts(op, l.Val, r.Val)
		}
		return applyLogical(op, left, right), nil
	case BoolValue:
		return applyLogical(op, left, right), nil
	case StringValue:
		switch r := right.(type) {
		case IntValue:
			if op == ast.OpMul {
				out, err := Repeat(l.Val, r.Val)
				if err != nil {
					return nil, err
				}
				return StringValue{Val: out}, nil
			}
			return StringValue{Val: l.Val + AsText(r)}, nil
		case BoolValue:
			return StringValue{Val: l.Val + AsText(r)}, nil
		case StringValue:
			if op == ast.OpAdd {
				return StringValue{Val: l.Val + r.Val}, nil
			}
			return BoolValue{Val: compare(op, strings.Compare(l.Val, r.Val))}, nil
		}
	}
	return nil, &OperationError{Op: op, Left: left.Kind(), Right: right.Kind()}
}

func applyInts(op ast.Operator, l, r int64) (Value, error) {
	switch op {
	case ast.OpAdd:
		return IntValue{Val: l + r}, nil
	case ast.OpSub:
		return IntValue{Val: l - r}, nil
	case ast.OpMul:
		return IntValue{Val: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return IntValue{Val: l / r}, nil
	}
	c := 0
	switch {
	case l < r:
		c = -1
	case l > r:
		c = 1
	}
	return BoolValue{Val: compare(op, c)}, nil
}

// applyLogical treats both operands by truthiness: + is OR and - is AND.
func applyLogical(op ast.Operator, left, right Value) Value {
	l, r := AsBool(left), AsBool(right)
	if op == ast.OpAdd {
		return BoolValue{Val: l || r}
	}
	return BoolValue{Val: l && r}
}

func compare(op ast.Operator, c int) bool {
	switch op {
	case ast.OpEqual:
		return c == 0
	case ast.OpNotEqual:
		return c != 0
	case ast.OpLess:
		return c < 0
	case ast.OpGreater:
		return c > 0
	case ast.OpLessEqual:
		return c <= 0
	case ast.OpGreaterEqual:
		return c >= 0
	}
	return false
}

// Repeat returns s repeated |n| times, byte-reversed when n is negative.
// Results longer than MaxRepeatLen fail with ErrRepeatTooLong.
func Repeat(s string, n int64) (string, error) {
	if n == 0 || s == "" {
		return "", nil
	}
	count := uint64(n)
	if n < 0 {
		count = uint64(-(n + 1)) + 1
	}
	if count > MaxRepeatLen/uint64(len(s)) {
		return "", ErrRepeatTooLong
	}
	out := strings.Repeat(s, int(count))
	if n > 0 {
		return out, nil
	}
	buf := []byte(out)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}
