package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go-calculator/internal/calculator"

	"github.com/stretchr/testify/assert"
)

func newEngine() *calculator.Engine {
	return calculator.NewEngine(calculator.NewLedger())
}

func TestRunOnceValidCases(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"5", "3", "addition"}, "The result of 5 addition 3 is equal to 8"},
		{[]string{"10", "2", "subtraction"}, "The result of 10 subtraction 2 is equal to 8"},
		{[]string{"4", "5", "multiplication"}, "The result of 4 multiplication 5 is equal to 20"},
		{[]string{"20", "4", "division"}, "The result of 20 division 4 is equal to 5"},
		{[]string{"0.1", "0.2", "add"}, "The result of 0.1 add 0.2 is equal to 0.3"},
		{[]string{"1.5", "1.5", "addition"}, "The result of 1.5 addition 1.5 is equal to 3.0"},
		{[]string{"2.50", "2", "multiplication"}, "The result of 2.50 multiplication 2 is equal to 5.00"},
		{[]string{"10.0", "4", "division"}, "The result of 10.0 division 4 is equal to 2.5"},
		{[]string{"1e-20", "1", "division"}, "The result of 1e-20 division 1 is equal to 0.00000000000000000001"},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, "_"), func(t *testing.T) {
			var out bytes.Buffer
			code := RunOnce(context.Background(), newEngine(), tc.args, &out)

			assert.Equal(t, 0, code)
			assert.Equal(t, tc.expected, strings.TrimSpace(out.String()))
		})
	}
}

func TestRunOnceErrorCases(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"1", "0", "division"}, "Error: Division by zero."},
		{[]string{"9", "3", "unknown"}, "Unknown operation: unknown"},
		{[]string{"a", "3", "addition"}, "Invalid number input: a or 3 is not a valid number."},
		{[]string{"5", "b", "subtraction"}, "Invalid number input: 5 or b is not a valid number."},
		{[]string{"1e100000000", "1", "add"}, "Invalid number input: 1e100000000 or 1 is not a valid number."},
		{[]string{"1", "add"}, Usage},
		{[]string{}, Usage},
		{[]string{"1", "2", "add", "extra"}, Usage},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, "_"), func(t *testing.T) {
			var out bytes.Buffer
			code := RunOnce(context.Background(), newEngine(), tc.args, &out)

			assert.Equal(t, 1, code)
			assert.Contains(t, out.String(), tc.expected)
		})
	}
}

func TestRunOnceRecordsSuccessfulCall(t *testing.T) {
	engine := newEngine()

	var out bytes.Buffer
	RunOnce(context.Background(), engine, []string{"10", "5", "addition"}, &out)

	latest, ok := engine.Ledger().Latest()
	assert.True(t, ok)
	assert.Equal(t, "Record(10, 5, addition)", latest.String())
}

func TestErrorMessageUnexpected(t *testing.T) {
	msg := errorMessage(errors.New("Unexpected error"), "addition", "10", "5")
	assert.Equal(t, "An unexpected error occurred: Unexpected error", msg)
}

func TestEvaluateRecoversPanic(t *testing.T) {
	// A nil engine panics on first use.
	_, err := evaluate(context.Background(), nil, "add", "1", "2")
	assert.Error(t, err)
	assert.Contains(t, errorMessage(err, "add", "1", "2"), "An unexpected error occurred:")
}
