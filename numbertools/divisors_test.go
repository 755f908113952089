package numbertools

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivisorsAndPrimeDivisors_KnownValues(t *testing.T) {
	tests := []struct {
		n      int64
		divs   []int64
		primes []int64
	}{
		{1, []int64{1}, []int64{1}},
		{2, []int64{1, 2}, []int64{1, 2}},
		{3, []int64{1, 3}, []int64{1, 3}},
		{4, []int64{1, 2, 4}, []int64{1, 2}},
		{12, []int64{1, 2, 3, 4, 6, 12}, []int64{1, 2, 3}},
		{45, []int64{1, 3, 5, 9, 15, 45}, []int64{1, 3, 5}},
		{49, []int64{1, 7, 49}, []int64{1, 7}},
		{97, []int64{1, 97}, []int64{1, 97}},
	}

	for _, tt := range tests {
		divs, err := Divisors(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.divs, divs, "Divisors(%d)", tt.n)

		primes, err := PrimeDivisors(tt.n, true)
		require.NoError(t, err)
		assert.Equal(t, tt.primes, primes, "PrimeDivisors(%d, true)", tt.n)
	}
}

func TestDivisors_InvalidInput(t *testing.T) {
	for _, n := range []int64{0, -1, math.MinInt64} {
		divs, err := Divisors(n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput), "Divisors(%d): %v", n, err)
		assert.Nil(t, divs)
	}
}

func TestPrimeDivisors_InvalidInputPropagates(t *testing.T) {
	_, err := PrimeDivisors(0, true)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = PrimeDivisors(-12, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPrimeDivisors_WithoutOne(t *testing.T) {
	got, err := PrimeDivisors(1, false)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = PrimeDivisors(360, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 5}, got)
}

func TestDivisors_MatchesBruteForce(t *testing.T) {
	for n := int64(1); n <= 2000; n++ {
		var want []int64
		for d := int64(1); d <= n; d++ {
			if n%d == 0 {
				want = append(want, d)
			}
		}

		got, err := Divisors(n)
		require.NoError(t, err)
		require.Equal(t, want, got, "n=%d", n)
	}
}

func TestDivisors_SymmetricAndBounded(t *testing.T) {
	for n := int64(1); n <= 5000; n++ {
		divs, err := Divisors(n)
		require.NoError(t, err)

		require.Equal(t, int64(1), divs[0])
		require.Equal(t, n, divs[len(divs)-1])

		set := make(map[int64]bool, len(divs))
		for i, d := range divs {
			if i > 0 {
				require.Less(t, divs[i-1], d, "n=%d not strictly ascending", n)
			}
			set[d] = true
		}
		for _, d := range divs {
			require.True(t, set[n/d], "n=%d: pair of %d missing", n, d)
		}
	}
}

func TestDivisors_LargePerfectSquare(t *testing.T) {
	const p = int64(1_000_003)

	divs, err := Divisors(p * p)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, p, p * p}, divs)

	primes, err := PrimeDivisors(p*p, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, p}, primes)
}

func TestPrimeDivisors_SubsequenceOfDivisors(t *testing.T) {
	for n := int64(1); n <= 3000; n++ {
		divs, err := Divisors(n)
		require.NoError(t, err)
		withOne, err := PrimeDivisors(n, true)
		require.NoError(t, err)
		withoutOne, err := PrimeDivisors(n, false)
		require.NoError(t, err)

		// subsequência preservando a ordem
		j := 0
		for _, d := range divs {
			if j < len(withOne) && withOne[j] == d {
				j++
			}
		}
		require.Equal(t, len(withOne), j, "n=%d", n)

		require.Equal(t, int64(1), withOne[0])
		require.Equal(t, withOne[1:], withoutOne, "n=%d", n)
		for _, p := range withoutOne {
			require.True(t, IsPrime(p), "n=%d: %d not prime", n, p)
		}
	}
}

func TestIsPrime_Basic(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{2, true},
		{3, true},
		{4, false},
		{17, true},
		{21, false},
		{1, false},
		{0, false},
		{-7, false},
		{25, false},
		{49, false},
		{7919, true},
		{math.MinInt64, false},
		{math.MaxInt64, false}, // 7^2 * 73 * 127 * 337 * 92737 * 649657
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPrime(tt.n), "IsPrime(%d)", tt.n)
	}
}

func TestIsPrime_MatchesTrialDivision(t *testing.T) {
	naive := func(n int64) bool {
		if n < 2 {
			return false
		}
		for d := int64(2); d*d <= n; d++ {
			if n%d == 0 {
				return false
			}
		}
		return true
	}

	for n := int64(-10); n <= 10000; n++ {
		require.Equal(t, naive(n), IsPrime(n), "n=%d", n)
	}
}

func TestIsPrime_LargePrime(t *testing.T) {
	assert.True(t, IsPrime(1_000_000_007))
	assert.True(t, IsPrime(2_147_483_647))
	assert.False(t, IsPrime(1_000_003*1_000_033))
}
