package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"divisors-gateway/divisors/domain"
	"divisors-gateway/numbertools"
)

// Service concentra o caso de uso "obter divisores de n", com cache opcional.
//
// Ele não sabe nada sobre HTTP, apenas devolve um domain.Result ou erro.
type Service struct {
	Cache domain.ResultCache
	// IncludeOne coloca o 1 na lista de divisores primos.
	IncludeOne bool
	// OnCacheError recebe falhas de leitura/escrita do cache. Pode ser nil.
	OnCacheError func(error)

	now func() time.Time
}

// Compute devolve os divisores de n, servindo do cache quando possível.
// n < 1 retorna um erro que casa com numbertools.ErrInvalidInput.
func (s Service) Compute(ctx context.Context, n int64) (domain.Result, error) {
	if n < 1 {
		return domain.Result{}, fmt.Errorf("%w (n=%d)", numbertools.ErrInvalidInput, n)
	}

	if s.Cache != nil {
		res, ok, err := s.Cache.Get(ctx, n)
		if err != nil {
			s.cacheError(fmt.Errorf("cache get %s: %w", domain.CacheKey(n), err))
		} else if ok {
			res.Cached = true
			return res, nil
		}
	}

	res, err := s.calculate(n)
	if err != nil {
		return domain.Result{}, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, n, res); err != nil {
			s.cacheError(fmt.Errorf("cache set %s: %w", domain.CacheKey(n), err))
		}
	}
	return res, nil
}

func (s Service) calculate(n int64) (domain.Result, error) {
	now := s.now
	if now == nil {
		now = time.Now
	}

	start := now()
	divisors, err := numbertools.Divisors(n)
	if err != nil {
		return domain.Result{}, err
	}
	primes, err := numbertools.PrimeDivisors(n, s.IncludeOne)
	if err != nil {
		return domain.Result{}, err
	}
	elapsed := now().Sub(start)

	return domain.Result{
		Input:         n,
		Divisors:      divisors,
		PrimeDivisors: primes,
		ElapsedMs:     roundMillis(elapsed),
		Cached:        false,
	}, nil
}

func (s Service) cacheError(err error) {
	if s.OnCacheError != nil {
		s.OnCacheError(err)
	}
}

// roundMillis converte para milissegundos com 3 casas decimais.
func roundMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*1000) / 1000
}
