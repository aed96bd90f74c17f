package operations

import "bfhl-service/internal/mathops"

// NewLCM folds |a*b|/gcd(a,b) left to right. lcm of two zeros renders as null.
func NewLCM() Operation {
	return &foldOperation{key: KeyLCM, fold: mathops.LCMOf}
}
