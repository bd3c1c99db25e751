package runtime

import (
	"fmt"
	"strconv"

	"github.com/CodyValle/LexicalAnalyzer/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
)

// Kinds lists every value kind in table order.
var Kinds = []Kind{KindInt, KindBool, KindString}

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindOf maps a resolved static type to the kind of its values.
func KindOf(t ast.TypeName) (Kind, bool) {
	switch t {
	case ast.TypeInt:
		return KindInt, true
	case ast.TypeBool:
		return KindBool, true
	case ast.TypeString:
		return KindString, true
	}
	return 0, false
}

// TypeName is the inverse of KindOf.
func (k Kind) TypeName() ast.TypeName {
	switch k {
	case KindInt:
		return ast.TypeInt
	case KindBool:
		return ast.TypeBool
	case KindString:
		return ast.TypeString
	}
	return ast.TypeUnknown
}

// Value is implemented by IntValue, BoolValue and StringValue only.
type Value interface {
	Kind() Kind
	isValue()
}

type IntValue struct {
	Val int64
}

func (IntValue) Kind() Kind { return KindInt }
func (IntValue) isValue()   {}

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }
func (BoolValue) isValue()   {}

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }
func (StringValue) isValue()   {}

// Zero returns the value held by storage that was declared but never assigned.
func Zero(k Kind) Value {
	switch k {
	case KindBool:
		return BoolValue{}
	case KindString:
		return StringValue{}
	default:
		return IntValue{}
	}
}

// Conversions. Every conversion is total.

// AsInt converts v to an integer. Booleans become 0 or 1. Text yields its
// leading decimal integer, or 0 when it has none.
func AsInt(v Value) int64 {
	switch val := v.(type) {
	case IntValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return 1
		}
		return 0
	case StringValue:
		return ParseLeadingInt(val.Val)
	}
	return 0
}

// AsBool converts v to a boolean: integers by non-zeroness, text by equality
// with "true".
func AsBool(v Value) bool {
	switch val := v.(type) {
	case IntValue:
		return val.Val != 0
	case BoolValue:
		return val.Val
	case StringValue:
		return val.Val == "true"
	}
	return false
}

// AsText renders v the way print does.
func AsText(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case StringValue:
		return val.Val
	}
	return ""
}

// ParseLeadingInt skips leading blanks, accepts one optional sign and then
// consumes decimal digits. Overflow wraps, matching the native rt_str_to_int.
func ParseLeadingInt(s string) int64 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
