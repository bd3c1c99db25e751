package ast

// TypeName is the static type written in a declaration or resolved by the
// checker.
type TypeName int

const (
	TypeUnknown TypeName = iota
	TypeInt
	TypeBool
	TypeString
)

func (t TypeName) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

type Subtype int

const (
	SubtypeScalar Subtype = iota
	SubtypeList
)

func (s Subtype) String() string {
	if s == SubtypeList {
		return "list"
	}
	return "scalar"
}

type Operator string

const (
	OpAdd          Operator = "+"
	OpSub          Operator = "-"
	OpMul          Operator = "*"
	OpDiv          Operator = "/"
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
)

// MathOperators and Relations list every operator in table order.
var (
	MathOperators = []Operator{OpAdd, OpSub, OpMul, OpDiv}
	Relations     = []Operator{OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual}
)

func (op Operator) IsRelation() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		return true
	}
	return false
}

// OperatorForToken maps an operator token to its Operator.
func OperatorForToken(kind TokenKind) (Operator, bool) {
	switch kind {
	case TokenPlus:
		return OpAdd, true
	case TokenMinus:
		return OpSub, true
	case TokenStar:
		return OpMul, true
	case TokenSlash:
		return OpDiv, true
	case TokenEqual:
		return OpEqual, true
	case TokenNotEqual:
		return OpNotEqual, true
	case TokenLess:
		return OpLess, true
	case TokenGreater:
		return OpGreater, true
	case TokenLessEqual:
		return OpLessEqual, true
	case TokenGreaterEqual:
		return OpGreaterEqual, true
	}
	return "", false
}

type Connector int

const (
	ConnectorNone Connector = iota
	ConnectorAnd
	ConnectorOr
)

func (c Connector) String() string {
	switch c {
	case ConnectorAnd:
		return "and"
	case ConnectorOr:
		return "or"
	default:
		return ""
	}
}

type ReadMode int

const (
	ReadInt ReadMode = iota
	ReadString
)
