// Package mathops holds the number routines behind the fibonacci, prime, lcm
// and hcf operations.
//
// Values are float64 because they arrive as JSON numbers and go back out as
// JSON numbers; integral inputs below 2^53 are handled exactly.
package mathops

import "math"

// maxExactInteger is 2^53. Every float64 at or above it is even.
const maxExactInteger = 1 << 53

// Fibonacci returns the first n Fibonacci numbers starting 0, 1.
// n <= 0 yields an empty, non-nil slice.
func Fibonacci(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{0}
	}

	seq := make([]float64, 2, n)
	seq[0], seq[1] = 0, 1
	for len(seq) < n {
		seq = append(seq, seq[len(seq)-1]+seq[len(seq)-2])
	}
	return seq
}

// IsInteger reports whether v is a finite whole number.
func IsInteger(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
}

// IsPrime tests primality by trial division up to the square root.
// Numbers <= 1 and non-integers are not prime.
func IsPrime(v float64) bool {
	if v <= 1 || !IsInteger(v) {
		return false
	}
	if v >= maxExactInteger {
		return false
	}

	n := uint64(v)
	for i := uint64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// GCD is the Euclidean greatest common divisor, gcd(a, 0) = |a|.
// A NaN anywhere in the chain yields NaN instead of looping.
func GCD(a, b float64) float64 {
	for b != 0 {
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.NaN()
		}
		a, b = b, math.Mod(a, b)
	}
	return math.Abs(a)
}

// LCM returns |a*b| / gcd(a, b). lcm(0, 0) is NaN.
func LCM(a, b float64) float64 {
	return math.Abs(a*b) / GCD(a, b)
}

// Reduce folds values left to right with fn. A single value is returned
// unchanged, without calling fn. values must not be empty.
func Reduce(values []float64, fn func(acc, v float64) float64) float64 {
	acc := values[0]
	for _, v := range values[1:] {
		acc = fn(acc, v)
	}
	return acc
}

// HCF folds GCD over values.
func HCF(values []float64) float64 {
	return Reduce(values, GCD)
}

// LCMOf folds LCM over values.
func LCMOf(values []float64) float64 {
	return Reduce(values, LCM)
}
