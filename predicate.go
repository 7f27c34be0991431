package stroopwafel

import (
	"math"
	"strconv"
	"strings"
)

// Operator is a comparison operator recognized by the predicate
// grammar.
type Operator string

// The set of operators, in the longest-match-first order the parser
// must try them in: "!=", "<=", ">=" must be recognized before "=",
// "<", ">" so that e.g. "x <= 5" doesn't split on the bare "<".
const (
	OpNotEqual           Operator = "!="
	OpLessThanOrEqual    Operator = "<="
	OpGreaterThanOrEqual Operator = ">="
	OpEqual              Operator = "="
	OpLessThan           Operator = "<"
	OpGreaterThan        Operator = ">"
)

// operatorsByPrecedence is tried in order; longer operators that
// share a prefix with a shorter one must come first.
var operatorsByPrecedence = []Operator{
	OpNotEqual, OpLessThanOrEqual, OpGreaterThanOrEqual,
	OpEqual, OpLessThan, OpGreaterThan,
}

// Predicate is a parsed "LHS OP RHS" comparison, the sole grammar a
// first-party caveat's bytes may express.
type Predicate struct {
	LHS string
	Op  Operator
	RHS string
}

// ParsePredicate parses s as "LHS OP RHS". OP is found by the first
// occurrence of any operator, trying operators longest-match-first
// (see operatorsByPrecedence) so "!=", "<=", ">=" win over "=", "<",
// ">" when both could match at the same position. LHS and RHS are
// trimmed of ASCII whitespace; no further trimming is applied to
// whitespace inside the operands. Malformed input (no operator found)
// returns ErrInvalidPredicate.
func ParsePredicate(s string) (Predicate, error) {
	bestPos := -1
	var bestOp Operator

	for _, op := range operatorsByPrecedence {
		pos := strings.Index(s, string(op))
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos {
			bestPos = pos
			bestOp = op
		}
	}

	if bestPos < 0 {
		return Predicate{}, newError(
			KindInvalidPredicate,
			"no operator found in predicate: "+quote(s),
		)
	}

	lhs := strings.TrimFunc(s[:bestPos], isASCIISpace)
	rhs := strings.TrimFunc(s[bestPos+len(bestOp):], isASCIISpace)

	return Predicate{LHS: lhs, Op: bestOp, RHS: rhs}, nil
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func quote(s string) string {
	return "'" + s + "'"
}

// resolve looks up name in context; if present, its value is used,
// otherwise name itself is used literally. This lets a caveat carry
// either a contextual or a constant operand on either side.
func resolve(name string, context map[string]string) string {
	if v, ok := context[name]; ok {
		return v
	}
	return name
}

// Eval resolves both operands against context (falling back to the
// literal operand text when context has no entry for it), then
// compares them: numerically if both resolved sides parse as finite
// float64s, lexicographically as byte strings otherwise.
func (p Predicate) Eval(context map[string]string) bool {
	lhs := resolve(p.LHS, context)
	rhs := resolve(p.RHS, context)

	lhsNum, lhsOK := parseFiniteFloat(lhs)
	rhsNum, rhsOK := parseFiniteFloat(rhs)
	if lhsOK && rhsOK {
		return p.evalNumeric(lhsNum, rhsNum)
	}

	return p.evalString(lhs, rhs)
}

func parseFiniteFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	// strconv.ParseFloat accepts "nan"/"NaN" and returns +/-Inf for
	// out-of-range literals like "1e400"; only finite values take the
	// numeric path (per spec, "NaN cannot occur" on that path — a
	// literal "NaN" string must fall to the string path instead, since
	// v > maxFiniteFloat and v < -maxFiniteFloat are both false for
	// NaN and would otherwise slip through).
	if math.IsNaN(v) {
		return 0, false
	}
	if v > maxFiniteFloat || v < -maxFiniteFloat {
		return 0, false
	}
	return v, true
}

const maxFiniteFloat = 1.7976931348623157e+308

func (p Predicate) evalNumeric(lhs, rhs float64) bool {
	switch p.Op {
	case OpEqual:
		return lhs == rhs
	case OpNotEqual:
		return lhs != rhs
	case OpLessThan:
		return lhs < rhs
	case OpGreaterThan:
		return lhs > rhs
	case OpLessThanOrEqual:
		return lhs <= rhs
	case OpGreaterThanOrEqual:
		return lhs >= rhs
	default:
		return false
	}
}

func (p Predicate) evalString(lhs, rhs string) bool {
	switch p.Op {
	case OpEqual:
		return lhs == rhs
	case OpNotEqual:
		return lhs != rhs
	case OpLessThan:
		return lhs < rhs
	case OpGreaterThan:
		return lhs > rhs
	case OpLessThanOrEqual:
		return lhs <= rhs
	case OpGreaterThanOrEqual:
		return lhs >= rhs
	default:
		return false
	}
}
