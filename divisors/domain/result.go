package domain

import (
	"context"
	"strconv"
)

// Result é o payload devolvido pela API.
//
// Cached é responsabilidade da camada de cache: o valor armazenado sempre tem
// Cached=false e quem serve do cache devolve uma cópia com Cached=true.
type Result struct {
	Input         int64   `json:"input"`
	Divisors      []int64 `json:"divisors"`
	PrimeDivisors []int64 `json:"primeDivisors"`
	ElapsedMs     float64 `json:"elapsedMs"`
	Cached        bool    `json:"cached"`
}

// CacheKey monta a chave usada pelos caches ("divs:{n}").
func CacheKey(n int64) string {
	return "divs:" + strconv.FormatInt(n, 10)
}

// ResultCache guarda resultados já calculados por n.
//
// Implementações decidem expiração e limite de tamanho. Erros são tratados como
// best-effort pela camada application (não derrubam a requisição).
type ResultCache interface {
	Get(ctx context.Context, n int64) (Result, bool, error)
	Set(ctx context.Context, n int64, r Result) error
}
