package domain

import (
	"context"
	"time"
)

// StatsEvent representa uma decisão do rate limit.
//
// Route deve ser o padrão da rota (ex.: "/api/v1/divisors/{n}") e não o path
// bruto: cada n geraria uma chave nova em memória/Redis.
type StatsEvent struct {
	Key     Key
	Allowed bool

	Method string
	Route  string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas do rate limit.
//
// O middleware trata erro como best-effort (não derruba a requisição).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
