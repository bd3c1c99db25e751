package runtime

import (
	"errors"
	"math"
	"testing"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

func allOperators() []ast.Operator {
	return append(append([]ast.Operator{}, ast.MathOperators...), ast.Relations...)
}

func TestLegalityTableIsExhaustive(t *testing.T) {
	legal := map[Kind]map[Kind][]ast.Operator{
		KindInt: {
			KindInt:  allOperators(),
			KindBool: {ast.OpAdd, ast.OpSub},
		},
		KindBool: {
			KindInt:  {ast.OpAdd, ast.OpSub},
			KindBool: {ast.OpAdd, ast.OpSub},
		},
		KindString: {
			KindInt:    {ast.OpAdd, ast.OpMul},
			KindBool:   {ast.OpAdd},
			KindString: append([]ast.Operator{ast.OpAdd}, ast.Relations...),
		},
	}
	for _, left := range Kinds {
		for _, right := range Kinds {
			allowed := map[ast.Operator]bool{}
			for _, op := range legal[left][right] {
				allowed[op] = true
			}
			for _, op := range allOperators() {
				_, ok := ResultKind(op, left, right)
				if ok != allowed[op] {
					t.Fatalf("%s %s %s: legal=%v, want %v", left, op, right, ok, allowed[op])
				}
			}
		}
	}
}

func TestResultKinds(t *testing.T) {
	cases := []struct {
		op          ast.Operator
		left, right Kind
		want        Kind
	}{
		{ast.OpDiv, KindInt, KindInt, KindInt},
		{ast.OpLess, KindInt, KindInt, KindBool},
		{ast.OpAdd, KindInt, KindBool, KindBool},
		{ast.OpSub, KindBool, KindBool, KindBool},
		{ast.OpMul, KindString, KindInt, KindString},
		{ast.OpAdd, KindString, KindBool, KindString},
		{ast.OpGreaterEqual, KindString, KindString, KindBool},
	}
	for _, tc := range cases {
		got, ok := ResultKind(tc.op, tc.left, tc.right)
		if !ok || got != tc.want {
			t.Fatalf("%s %s %s = %s (%v), want %s", tc.left, tc.op, tc.right, got, ok, tc.want)
		}
	}
}

func TestApply(t *testing.T) {
	cases := []struct {
		name        string
		op          ast.Operator
		left, right Value
		want        Value
	}{
		{"int add", ast.OpAdd, IntValue{Val: 5}, IntValue{Val: 3}, IntValue{Val: 8}},
		{"int div truncates", ast.OpDiv, IntValue{Val: -7}, IntValue{Val: 2}, IntValue{Val: -3}},
		{"int relation", ast.OpLessEqual, IntValue{Val: 2}, IntValue{Val: 2}, BoolValue{Val: true}},
		{"int plus bool is or", ast.OpAdd, IntValue{Val: 0}, BoolValue{Val: true}, BoolValue{Val: true}},
		{"int minus bool is and", ast.OpSub, IntValue{Val: 4}, BoolValue{Val: false}, BoolValue{Val: false}},
		{"bool minus int is and", ast.OpSub, BoolValue{Val: true}, IntValue{Val: 9}, BoolValue{Val: true}},
		{"bool or", ast.OpAdd, BoolValue{Val: false}, BoolValue{Val: false}, BoolValue{Val: false}},
		{"append int", ast.OpAdd, StringValue{Val: "count: "}, IntValue{Val: 42}, StringValue{Val: "count: 42"}},
		{"append bool", ast.OpAdd, StringValue{Val: "ok="}, BoolValue{Val: true}, StringValue{Val: "ok=true"}},
		{"repeat", ast.OpMul, StringValue{Val: "ab"}, IntValue{Val: 3}, StringValue{Val: "ababab"}},
		{"repeat negative reverses", ast.OpMul, StringValue{Val: "ab"}, IntValue{Val: -2}, StringValue{Val: "baba"}},
		{"repeat zero", ast.OpMul, StringValue{Val: "ab"}, IntValue{Val: 0}, StringValue{Val: ""}},
		{"concat", ast.OpAdd, StringValue{Val: "a"}, StringValue{Val: "b"}, StringValue{Val: "ab"}},
		{"lexicographic", ast.OpLess, StringValue{Val: "abc"}, StringValue{Val: "abd"}, BoolValue{Val: true}},
		{"text inequality", ast.OpNotEqual, StringValue{Val: "a"}, StringValue{Val: "a"}, BoolValue{Val: false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.op, tc.left, tc.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	if _, err := Apply(ast.OpDiv, IntValue{Val: 1}, IntValue{Val: 0}); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	_, err := Apply(ast.OpSub, StringValue{Val: "a"}, StringValue{Val: "b"})
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %v", err)
	}
	if opErr.Left != KindString || opErr.Right != KindString || opErr.Op != ast.OpSub {
		t.Fatalf("unexpected operation error %#v", opErr)
	}
	if _, err := Apply(ast.OpAdd, IntValue{Val: 1}, StringValue{Val: "b"}); err == nil {
		t.Fatalf("expected int + string to be rejected")
	}
}

func TestRepeatRejectsHugeCounts(t *testing.T) {
	for _, n := range []int64{math.MaxInt64, math.MinInt64, MaxRepeatLen, -MaxRepeatLen} {
		if _, err := Apply(ast.OpMul, StringValue{Val: "ab"}, IntValue{Val: n}); !errors.Is(err, ErrRepeatTooLong) {
			t.Fatalf("count %d: expected ErrRepeatTooLong, got %v", n, err)
		}
	}
	if got, err := Repeat("", math.MinInt64); err != nil || got != "" {
		t.Fatalf("empty string repeat = %q, %v", got, err)
	}
	got, err := Repeat("x", -MaxRepeatLen)
	if err != nil || len(got) != MaxRepeatLen {
		t.Fatalf("repeat at the limit: len %d, err %v", len(got), err)
	}
}
