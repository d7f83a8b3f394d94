package cli

import (
	"context"
	"fmt"
	"io"

	"go-calculator/internal/calculator"
)

const Usage = "Usage: calc <number1> <number2> <operation>"

// RunOnce evaluates args of the form <number1> <number2> <operation>,
// prints the outcome to out and returns the process exit code.
func RunOnce(ctx context.Context, engine *calculator.Engine, args []string, out io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(out, Usage)
		return 1
	}

	rawA, rawB, opName := args[0], args[1], args[2]

	result, err := evaluate(ctx, engine, opName, rawA, rawB)
	if err != nil {
		fmt.Fprintln(out, errorMessage(err, opName, rawA, rawB))
		return 1
	}

	fmt.Fprintf(out, "The result of %s %s %s is equal to %s\n", rawA, opName, rawB, calculator.Format(result))
	return 0
}
