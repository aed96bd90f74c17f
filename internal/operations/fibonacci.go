package operations

import (
	"context"
	"fmt"
	"math"

	"bfhl-service/internal/common/errors"
	"bfhl-service/internal/mathops"
)

// maxSequenceLength is the largest sequence that fits in a single array.
const maxSequenceLength = math.MaxUint32

type fibonacciOperation struct {
	maxTerms int
}

// NewFibonacci returns the fibonacci operation. A positive maxTerms rejects
// requests for more terms; zero leaves the count unbounded.
func NewFibonacci(maxTerms int) Operation {
	return &fibonacciOperation{maxTerms: maxTerms}
}

func (o *fibonacciOperation) Key() string { return KeyFibonacci }

func (o *fibonacciOperation) Execute(_ context.Context, value interface{}) (interface{}, error) {
	f, ok := value.(float64)
	if !ok || !mathops.IsInteger(f) || f < 0 {
		return nil, errors.NewValidationFailedError(KeyFibonacci, []string{"(root): must be a non-negative integer"})
	}
	if o.maxTerms > 0 && f > float64(o.maxTerms) {
		return nil, errors.NewValidationFailedError(KeyFibonacci, []string{
			fmt.Sprintf("(root): must be less than or equal to %d", o.maxTerms),
		})
	}
	if f > maxSequenceLength {
		return nil, errors.NewInternalError(fmt.Sprintf("fibonacci: %s terms exceed the maximum sequence length", Number(f)))
	}
	return toNumbers(mathops.Fibonacci(int(f))), nil
}
