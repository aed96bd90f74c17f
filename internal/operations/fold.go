package operations

import (
	"context"

	"bfhl-service/internal/common/errors"
)

// foldOperation reduces a non-empty array of numbers to one number.
type foldOperation struct {
	key  string
	fold func([]float64) float64
}

func (o *foldOperation) Key() string { return o.key }

func (o *foldOperation) Execute(_ context.Context, value interface{}) (interface{}, error) {
	values := floats(value)
	if len(values) == 0 {
		return nil, errors.NewValidationFailedError(o.key, []string{"(root): must be a non-empty array of numbers"})
	}
	return Number(o.fold(values)), nil
}
