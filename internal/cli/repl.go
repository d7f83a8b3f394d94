package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go-calculator/internal/calculator"
	"go-calculator/internal/observability"

	"go.uber.org/zap"
)

const prompt = "Enter a command (add, subtract, multiply, divide) followed by two numbers: "

// REPL is the interactive calculator loop.
type REPL struct {
	engine *calculator.Engine
	in     *bufio.Scanner
	out    io.Writer
}

func NewREPL(engine *calculator.Engine, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		engine: engine,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run reads commands until exit, end of input, or ctx is done. Cancellation
// is observed between lines.
func (r *REPL) Run(ctx context.Context) error {
	r.println("Welcome to the interactive calculator!")
	r.println("Type 'menu' to see the available commands or 'exit' to quit.")
	r.println("Type 'history' to view past calculations or 'clear_history' to clear them.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.out, prompt)

		if !r.in.Scan() {
			if err := r.in.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			r.println("")
			r.println("Goodbye!")
			return nil
		}

		if done := r.handle(ctx, strings.TrimSpace(r.in.Text())); done {
			return nil
		}
	}
}

// handle executes one input line and reports whether the loop should stop.
func (r *REPL) handle(ctx context.Context, line string) bool {
	switch strings.ToLower(line) {
	case "exit":
		r.println("Goodbye!")
		return true
	case "menu":
		r.printMenu()
	case "history":
		r.printHistory()
	case "clear_history":
		r.engine.Ledger().Clear()
		r.println("Calculation history cleared.")
	default:
		r.calculate(ctx, line)
	}
	return false
}

func (r *REPL) calculate(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		r.println("Invalid input. Please provide a command followed by two numbers.")
		return
	}

	opName, rawA, rawB := fields[0], fields[1], fields[2]

	result, err := evaluate(ctx, r.engine, opName, rawA, rawB)
	if err != nil {
		r.println(errorMessage(err, opName, rawA, rawB))
		return
	}

	observability.Logger.Debug("repl calculation",
		zap.String("operation", opName),
		zap.Stringer("result", result),
	)
	fmt.Fprintf(r.out, "The result of %s between %s and %s is %s\n", opName, rawA, rawB, calculator.Format(result))
}

func (r *REPL) printMenu() {
	r.println("Available commands:")
	for _, op := range calculator.Operations() {
		fmt.Fprintf(r.out, "  %s: %s two numbers (%s)\n", op.Verb(), menuVerb(op), op.Name())
	}
	r.println("  history: View calculation history")
	r.println("  clear_history: Clear calculation history")
	r.println("  menu: Show available commands")
	r.println("  exit: Exit the calculator")
}

func menuVerb(op calculator.Operation) string {
	v := op.Verb()
	return strings.ToUpper(v[:1]) + v[1:]
}

func (r *REPL) printHistory() {
	records := r.engine.Ledger().All()
	if len(records) == 0 {
		r.println("No history available.")
		return
	}

	for i, rec := range records {
		fmt.Fprintf(r.out, "%d: %s\n", i+1, rec)
	}
}

func (r *REPL) println(s string) {
	fmt.Fprintln(r.out, s)
}
