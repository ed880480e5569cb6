package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

func RoundWithFourDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10000) / 10000
}

// ParseAmount converte um valor monetário em string (formato da API) para
// float64; vazio ou inválido vale zero
func ParseAmount(amount string) float64 {
	if amount == "" {
		return 0
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}

	return value
}
