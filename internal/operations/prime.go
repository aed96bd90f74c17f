package operations

import (
	"context"

	"bfhl-service/internal/mathops"
)

type primeOperation struct{}

func NewPrime() Operation {
	return primeOperation{}
}

func (primeOperation) Key() string { return KeyPrime }

// Execute keeps the prime numbers in input order. Anything that is not a
// number is dropped silently.
func (primeOperation) Execute(_ context.Context, value interface{}) (interface{}, error) {
	items, _ := value.([]interface{})
	primes := make([]Number, 0, len(items))
	for _, item := range items {
		f, ok := item.(float64)
		if ok && mathops.IsPrime(f) {
			primes = append(primes, Number(f))
		}
	}
	return primes, nil
}
