package operations

import "bfhl-service/internal/mathops"

func NewHCF() Operation {
	return &foldOperation{key: KeyHCF, fold: mathops.HCF}
}
