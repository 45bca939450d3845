package calculator

import (
	"fmt"
	"math"

	"smart-calculator/internal/apperr"
	"smart-calculator/internal/history"
)

// Operation selects the arithmetic applied to two operands.
type Operation string

const (
	Add        Operation = "add"
	Subtract   Operation = "subtract"
	Multiply   Operation = "multiply"
	Divide     Operation = "divide"
	Power      Operation = "power"
	Percentage Operation = "percentage" // a percent of b
)

// OperationInfo describes an operation for selection lists.
type OperationInfo struct {
	Op    Operation
	Label string
}

var operations = []OperationInfo{
	{Add, "Add (+)"},
	{Subtract, "Subtract (-)"},
	{Multiply, "Multiply (×)"},
	{Divide, "Divide (÷)"},
	{Power, "Power (a^b)"},
	{Percentage, "Percentage (a% of b)"},
}

// Operations lists the supported operations in display order.
func Operations() []OperationInfo {
	out := make([]OperationInfo, len(operations))
	copy(out, operations)
	return out
}

// Evaluate applies op to a and b and returns the result with the operator
// symbol used to render the expression.
func Evaluate(a, b float64, op Operation) (float64, string, error) {
	switch op {
	case Add:
		return a + b, "+", nil
	case Subtract:
		return a - b, "-", nil
	case Multiply:
		return a * b, "×", nil
	case Divide:
		if b == 0 {
			return 0, "", apperr.ErrDivisionByZero
		}
		return a / b, "÷", nil
	case Power:
		return math.Pow(a, b), "^", nil
	case Percentage:
		return (a / 100) * b, "% of", nil
	default:
		return 0, "", apperr.New(apperr.UnknownOperation, "unknown operation", fmt.Errorf("operation %q is not supported", op))
	}
}

// Expression renders the calculation as shown in the ledger, e.g.
// "12.0 ÷ 3.0" or "50.0% of 200.0".
func Expression(a, b float64, symbol string) string {
	if symbol == "% of" {
		return history.FormatNumber(a) + "% of " + history.FormatNumber(b)
	}
	return history.FormatNumber(a) + " " + symbol + " " + history.FormatNumber(b)
}
