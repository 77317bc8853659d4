package operator

import (
	"cdecl/internal/dialect"
)

// ID identifies a C++ operator.
type ID uint8

const (
	None ID = iota
	CoAwait
	New
	NewArray
	Delete
	DeleteArray
	Exclam
	ExclamEqual
	Percent
	PercentEqual
	Amper
	Amper2
	AmperEqual
	Parens
	Star
	StarEqual
	Plus
	Plus2
	PlusEqual
	Comma
	Minus
	Minus2
	MinusEqual
	Arrow
	ArrowStar
	Dot
	DotStar
	Slash
	SlashEqual
	Colon2
	Less
	Less2
	Less2Equal
	LessEqual
	LessEqualGreater
	Equal
	Equal2
	Greater
	GreaterEqual
	Greater2
	Greater2Equal
	QmarkColon
	Brackets
	Caret
	CaretEqual
	Pipe
	PipeEqual
	Pipe2
	Tilde
)

// Overload says how an operator may be overloaded. The member bits match
// ast.Member so that the two can be and'ed.
type Overload uint8

const (
	OverloadNone      Overload = 0
	OverloadMember    Overload = 1 << 0
	OverloadNonMember Overload = 1 << 1
	OverloadEither             = OverloadMember | OverloadNonMember
)

// Unlimited is the ParamsMax of operators taking any number of parameters.
const Unlimited = ^uint(0)

// Operator describes one overloadable (or not) operator.
type Operator struct {
	ID        ID
	Literal   string
	Langs     dialect.Set
	Overload  Overload
	ParamsMin uint
	ParamsMax uint
}

// Ambiguous reports whether the operator can be unary or binary, so a single
// parameter does not tell member from non-member.
func (op *Operator) Ambiguous() bool {
	return op.ParamsMin == 0 && op.ParamsMax == 2
}

const (
	eit = OverloadEither
	mbr = OverloadMember
	xxx = OverloadNone
	unl = Unlimited
)

var cpp = dialect.AnyCPP

// таблица отсортирована по ID; у одного ID может быть несколько строк
var table = []Operator{
	{None, "none", dialect.None, xxx, 0, 0},
	{CoAwait, "co_await", dialect.CPPMin(dialect.CPP20), eit, 0, 1},
	{New, "new", cpp, eit, 1, unl},
	{NewArray, "new[]", cpp, eit, 1, unl},
	{Delete, "delete", cpp, eit, 1, unl},
	{DeleteArray, "delete[]", cpp, eit, 1, unl},
	{Exclam, "!", cpp, eit, 0, 1},
	{ExclamEqual, "!=", cpp, eit, 1, 2},
	{Percent, "%", cpp, eit, 1, 2},
	{PercentEqual, "%=", cpp, eit, 1, 2},
	{Amper, "&", cpp, eit, 0, 2},
	{Amper2, "&&", cpp, eit, 1, 2},
	{AmperEqual, "&=", cpp, eit, 1, 2},
	{Parens, "()", cpp, mbr, 0, unl},
	{Star, "*", cpp, eit, 0, 2},
	{StarEqual, "*=", cpp, eit, 1, 2},
	{Plus, "+", cpp, eit, 0, 2},
	{Plus2, "++", cpp, eit, 0, 2},
	{PlusEqual, "+=", cpp, eit, 1, 2},
	{Comma, ",", cpp, eit, 1, 2},
	{Minus, "-", cpp, eit, 0, 2},
	{Minus2, "--", cpp, eit, 0, 2},
	{MinusEqual, "-=", cpp, eit, 1, 2},
	{Arrow, "->", cpp, mbr, 0, 0},
	{ArrowStar, "->*", cpp, eit, 1, 2},
	{Dot, ".", cpp, xxx, 0, 0},
	{DotStar, ".*", cpp, xxx, 0, 0},
	{Slash, "/", cpp, eit, 1, 2},
	{SlashEqual, "/=", cpp, eit, 1, 2},
	{Colon2, "::", cpp, xxx, 0, 0},
	{Less, "<", cpp, eit, 1, 2},
	{Less2, "<<", cpp, eit, 1, 2},
	{Less2Equal, "<<=", cpp, eit, 1, 2},
	{LessEqual, "<=", cpp, eit, 1, 2},
	{LessEqualGreater, "<=>", dialect.CPPMin(dialect.CPP20), eit, 1, 2},
	{Equal, "=", cpp, mbr, 1, 1},
	{Equal2, "==", cpp, eit, 1, 2},
	{Greater, ">", cpp, eit, 1, 2},
	{GreaterEqual, ">=", cpp, eit, 1, 2},
	{Greater2, ">>", cpp, eit, 1, 2},
	{Greater2Equal, ">>=", cpp, eit, 1, 2},
	{QmarkColon, "?:", cpp, xxx, 0, 0},
	{Brackets, "[]", dialect.CPPMax(dialect.CPP20), mbr, 1, 1},
	{Brackets, "[]", dialect.CPPMin(dialect.CPP23), mbr, 0, unl},
	{Caret, "^", cpp, eit, 1, 2},
	{CaretEqual, "^=", cpp, eit, 1, 2},
	{Pipe, "|", cpp, eit, 1, 2},
	{PipeEqual, "|=", cpp, eit, 1, 2},
	{Pipe2, "||", cpp, eit, 1, 2},
	{Tilde, "~", cpp, eit, 0, 1},
}

// Get returns the row for id that applies in ctx. When no row is legal in
// ctx, the last row for id is returned so that callers can still report on
// it. A nil ctx picks the newest row.
func Get(ctx *dialect.Context, id ID) *Operator {
	var best *Operator
	for i := int(id); i < len(table); i++ {
		op := &table[i]
		if op.ID < id {
			continue
		}
		if op.ID > id {
			break
		}
		if ctx != nil && ctx.Is(op.Langs) {
			return op
		}
		best = op
	}
	if best == nil {
		panic("operator: unknown id")
	}
	return best
}

// Find returns the ID of the operator spelled literal.
func Find(literal string) (ID, bool) {
	switch literal {
	case "new []":
		literal = "new[]"
	case "delete []":
		literal = "delete[]"
	case "( )":
		literal = "()"
	case "[ ]":
		literal = "[]"
	}
	for i := range table {
		if table[i].ID != None && table[i].Literal == literal {
			return table[i].ID, true
		}
	}
	return None, false
}

// IsNewDelete reports whether id is one of the allocation operators.
func (id ID) IsNewDelete() bool {
	switch id {
	case New, NewArray, Delete, DeleteArray:
		return true
	}
	return false
}

// IsRelational reports whether id compares two values.
func (id ID) IsRelational() bool {
	switch id {
	case Equal2, ExclamEqual, Greater, GreaterEqual, Less, LessEqual, LessEqualGreater:
		return true
	}
	return false
}

func (id ID) String() string { return Get(nil, id).Literal }
