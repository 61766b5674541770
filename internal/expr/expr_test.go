package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func row(values ...float64) []Value {
	result := make([]Value, 0, len(values))
	for _, value := range values {
		result = append(result, Number(value))
	}
	return result
}

func TestEvalSum(t *testing.T) {
	program, err := Compile("1+2", 3)
	require.NoError(t, err)

	value := program.Eval(row(3, 4, 5))
	require.True(t, value.Defined)
	require.Equal(t, 7.0, value.Number)
}

func TestEvalPrecedenceAndGrouping(t *testing.T) {
	program, err := Compile("1+2*3", 3)
	require.NoError(t, err)
	value := program.Eval(row(3, 4, 5))
	require.Equal(t, 23.0, value.Number)

	program, err = Compile("(1+2)*3", 3)
	require.NoError(t, err)
	value = program.Eval(row(3, 4, 5))
	require.Equal(t, 35.0, value.Number)
}

func TestEvalDivision(t *testing.T) {
	program, err := Compile("1/2", 2)
	require.NoError(t, err)

	value := program.Eval(row(10, 4))
	require.True(t, value.Defined)
	require.Equal(t, 2.5, value.Number)
}

func TestDivisionByZeroIsUndefined(t *testing.T) {
	program, err := Compile("1/2", 2)
	require.NoError(t, err)

	value := program.Eval(row(10, 0))
	require.False(t, value.Defined)

	// Undefined propagates through surrounding arithmetic.
	program, err = Compile("(1/2)+1", 2)
	require.NoError(t, err)
	require.False(t, program.Eval(row(10, 0)).Defined)
}

func TestUndefinedOperandPropagates(t *testing.T) {
	program, err := Compile("1+2", 2)
	require.NoError(t, err)

	value := program.Eval([]Value{Number(3), Undefined()})
	require.False(t, value.Defined)
}

func TestUnaryMinus(t *testing.T) {
	program, err := Compile("-1+2", 2)
	require.NoError(t, err)

	value := program.Eval(row(3, 10))
	require.Equal(t, 7.0, value.Number)
}

func TestCompileRejectsOutOfRangeColumn(t *testing.T) {
	_, err := Compile("4", 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "out of range")

	_, err = Compile("0", 3)
	require.Error(t, err)
}

func TestCompileRejectsBadInput(t *testing.T) {
	for _, expression := range []string{"", "  ", "1+", "1 2", "(1+2", "1%2", "a+b", "*1"} {
		_, err := Compile(expression, 3)
		require.Error(t, err, "expression %q should not compile", expression)
	}
}

func TestEvalIsDeterministic(t *testing.T) {
	program, err := Compile("(1+2)/3", 3)
	require.NoError(t, err)

	operands := row(6, 3, 2)
	first := program.Eval(operands)
	second := program.Eval(operands)
	require.Equal(t, first, second)
	require.Equal(t, 4.5, first.Number)
}
