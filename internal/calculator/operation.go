package calculator

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Operation identifies one of the four supported binary operations.
type Operation int

const (
	Addition Operation = iota + 1
	Subtraction
	Multiplication
	Division
)

type operationDef struct {
	name   string
	verb   string
	symbol string
	apply  func(x, y decimal.Decimal) (decimal.Decimal, error)
}

var operationDefs = map[Operation]operationDef{
	Addition: {
		name:   "addition",
		verb:   "add",
		symbol: "+",
		apply: func(x, y decimal.Decimal) (decimal.Decimal, error) {
			return x.Add(y), nil
		},
	},
	Subtraction: {
		name:   "subtraction",
		verb:   "subtract",
		symbol: "-",
		apply: func(x, y decimal.Decimal) (decimal.Decimal, error) {
			return x.Sub(y), nil
		},
	},
	Multiplication: {
		name:   "multiplication",
		verb:   "multiply",
		symbol: "*",
		apply: func(x, y decimal.Decimal) (decimal.Decimal, error) {
			return x.Mul(y), nil
		},
	},
	Division: {
		name:   "division",
		verb:   "divide",
		symbol: "/",
		apply: func(x, y decimal.Decimal) (decimal.Decimal, error) {
			if y.IsZero() {
				return decimal.Decimal{}, ErrDivisionByZero
			}
			return divide(x, y), nil
		},
	},
}

// Operations returns all supported operations in declaration order.
func Operations() []Operation {
	return []Operation{Addition, Subtraction, Multiplication, Division}
}

// Name returns the stable name used for display and history lookups.
func (o Operation) Name() string {
	def, ok := operationDefs[o]
	if !ok {
		return fmt.Sprintf("operation(%d)", int(o))
	}
	return def.name
}

// Verb returns the imperative alias ("add", "divide", ...).
func (o Operation) Verb() string {
	return operationDefs[o].verb
}

// Symbol returns the infix symbol of the operation.
func (o Operation) Symbol() string {
	return operationDefs[o].symbol
}

func (o Operation) String() string {
	return o.Name()
}

// Valid reports whether o is one of the declared operations.
func (o Operation) Valid() bool {
	_, ok := operationDefs[o]
	return ok
}

// Apply evaluates the operation on x and y. It has no side effects.
func (o Operation) Apply(x, y decimal.Decimal) (decimal.Decimal, error) {
	def, ok := operationDefs[o]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownOperation, o.Name())
	}
	return def.apply(x, y)
}

// ParseOperation resolves a stable name, verb alias or symbol, ignoring case
// and surrounding whitespace.
func ParseOperation(name string) (Operation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, op := range Operations() {
		def := operationDefs[op]
		if key == def.name || key == def.verb || key == def.symbol {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
}

// Operand limits. Values outside them are rejected as invalid input so a
// single request cannot force arbitrarily large rescaling.
const (
	MaxExponent = 9999
	MaxDigits   = 1000
)

// ParseOperand parses a decimal literal such as "10", "-0.25" or "1e3".
func ParseOperand(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidNumericInput, s)
	}
	if err := CheckOperand(d); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidNumericInput, s)
	}
	return d, nil
}

// CheckOperand rejects values whose exponent or coefficient length exceeds
// MaxExponent or MaxDigits.
func CheckOperand(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	if exp > MaxExponent || exp < -MaxExponent {
		return fmt.Errorf("%w: exponent %d out of range", ErrInvalidNumericInput, exp)
	}
	if n := d.NumDigits(); n > MaxDigits {
		return fmt.Errorf("%w: %d digits", ErrInvalidNumericInput, n)
	}
	return nil
}

// divide keeps decimal.DivisionPrecision significant digits below the
// leading digit of the quotient, so small quotients are not rounded to zero.
// Trailing zeros are stripped down to the exponent x.exp - y.exp, which keeps
// exact quotients such as 20/4 and 10.0/2 in their natural form.
func divide(x, y decimal.Decimal) decimal.Decimal {
	if x.IsZero() {
		return decimal.Zero
	}
	magnitude := adjustedExponent(x) - adjustedExponent(y)
	places := int64(decimal.DivisionPrecision)
	if magnitude < 0 {
		places += 1 - magnitude
	}
	q := x.DivRound(y, int32(places))
	return reduce(q, int64(x.Exponent())-int64(y.Exponent()))
}

// adjustedExponent is the power of ten of the most significant digit.
func adjustedExponent(d decimal.Decimal) int64 {
	return int64(d.Exponent()) + int64(d.NumDigits()) - 1
}

// reduce drops trailing zeros from d's coefficient while its exponent is
// below minExp.
func reduce(d decimal.Decimal, minExp int64) decimal.Decimal {
	coef := d.Coefficient()
	exp := int64(d.Exponent())
	if coef.Sign() == 0 {
		return decimal.Zero
	}
	ten := big.NewInt(10)
	q, r := new(big.Int), new(big.Int)
	for exp < minExp {
		q.QuoRem(coef, ten, r)
		if r.Sign() != 0 {
			break
		}
		coef, q = q, coef
		exp++
	}
	return decimal.NewFromBigInt(coef, int32(exp))
}
