package numbertools

import (
	"errors"
	"fmt"
)

// ErrInvalidInput é retornado quando n < 1.
var ErrInvalidInput = errors.New("n deve ser >= 1")

// Divisors calcula todos os divisores de n (n >= 1) em ordem crescente. O(√n).
//
// O laço usa i <= n/i em vez de i*i <= n, então qualquer n até math.MaxInt64
// é aceito sem overflow.
func Divisors(n int64) ([]int64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w (n=%d)", ErrInvalidInput, n)
	}

	// menores ficam em ordem crescente, os pares (n/i) em ordem decrescente
	low := make([]int64, 0, 32)
	high := make([]int64, 0, 32)
	for i := int64(1); i <= n/i; i++ {
		if n%i != 0 {
			continue
		}
		low = append(low, i)
		if other := n / i; other != i {
			high = append(high, other)
		}
	}

	out := low
	for j := len(high) - 1; j >= 0; j-- {
		out = append(out, high[j])
	}
	return out, nil
}

// PrimeDivisors retorna os divisores de n que são primos, na mesma ordem de Divisors.
// Com includeOne, o 1 entra na lista (convenção de apresentação, 1 não é primo).
func PrimeDivisors(n int64, includeOne bool) ([]int64, error) {
	divisors, err := Divisors(n)
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(divisors))
	for _, d := range divisors {
		if d == 1 {
			if includeOne {
				out = append(out, 1)
			}
			continue
		}
		if IsPrime(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// IsPrime testa primalidade por 6k ± 1. Definida para qualquer int64.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	if n%3 == 0 {
		return n == 3
	}

	for i := int64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}
