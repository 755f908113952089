package domain

// Camada de domínio do rate limit da API de divisores.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import "time"

// Key identifica a partição do limite (cliente, API key ou uma chave global).
type Key string

// GlobalKey é a partição única usada quando todos os clientes dividem a mesma janela.
const GlobalKey Key = "global"

// Limiter representa algo que pode decidir se uma ação é permitida agora.
//
// Implementações em infra: token bucket (golang.org/x/time/rate) e janela fixa.
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave.
// A implementação pode manter cache, TTL, etc.
type LimiterStore interface {
	Get(Key) Limiter
}

// RateInfo descreve a política do store para headers informativos.
type RateInfo interface {
	RPS() float64
	Burst() int
}

type Decision struct {
	Allowed bool
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}
