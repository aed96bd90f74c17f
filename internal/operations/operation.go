// Package operations implements the five keyed computations behind POST /bfhl
// and dispatches a request value to the right one.
package operations

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
)

const (
	KeyFibonacci = "fibonacci"
	KeyPrime     = "prime"
	KeyLCM       = "lcm"
	KeyHCF       = "hcf"
	KeyAI        = "AI"
)

// Operation computes the response data for one request key. value has
// already passed the key's input schema.
type Operation interface {
	Key() string
	Execute(ctx context.Context, value interface{}) (interface{}, error)
}

// Number is a JSON number that renders NaN and ±Inf as null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func toNumbers(values []float64) []Number {
	out := make([]Number, len(values))
	for i, v := range values {
		out[i] = Number(v)
	}
	return out
}

// floats converts a schema-checked array of numbers.
func floats(value interface{}) []float64 {
	items, _ := value.([]interface{})
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if f, ok := item.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}
