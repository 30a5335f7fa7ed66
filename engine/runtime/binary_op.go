package runtime

import "fmt"

// route applies an arithmetic or comparison operator. Operands are checked
// before the operator, so an unknown operator on ints yields Nil while an
// unknown operator on anything else is still a type mismatch.
func route(l Value, opt string, other Value) (Value, error) {
	left, ok := l.(Int)
	if !ok {
		return Nil, fmt.Errorf("%w: '%s' only supported between ints but got: '%s'", ErrTypeMismatch, opt, l.String())
	}
	right, ok := other.(Int)
	if !ok {
		return Nil, fmt.Errorf("%w: '%s' only supported between ints but got: '%s'", ErrTypeMismatch, opt, other.String())
	}
	switch opt {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		return div(left, right)
	case "%":
		return modulo(left, right)
	case ">":
		return Bool(left > right), nil
	case ">=":
		return Bool(left >= right), nil
	case "<":
		return Bool(left < right), nil
	case "<=":
		return Bool(left <= right), nil
	case "==":
		return Bool(left == right), nil
	}
	return Nil, nil
}

func div(left, right Int) (Value, error) {
	if right == 0 {
		return Nil, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, left)
	}
	return left / right, nil
}

func modulo(left, right Int) (Value, error) {
	if right == 0 {
		return Nil, fmt.Errorf("%w: %d %% 0", ErrDivisionByZero, left)
	}
	return left % right, nil
}
