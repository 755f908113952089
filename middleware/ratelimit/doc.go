// Package ratelimit fornece middlewares net/http de rate limit e limite de concorrência
// para a rota de cálculo da API de divisores.
//
// Camadas:
//
//   - domain: contratos e tipos (sem net/http)
//   - application: decisão allow/deny e acquire com timeout (sem net/http)
//   - infra: token bucket, janela fixa, semáforo e contadores (memória/Redis)
//   - ratelimit (este pacote): middlewares HTTP, extração de chave, status/headers
//
// Fluxo:
//
//  1. Extrai a chave (global, header, X-Forwarded-For ou IP)
//  2. Pede a decisão à camada application
//  3. Se bloqueado, responde 429 (rate limit) ou 503 (concorrência)
//  4. Se permitido, chama o próximo handler
//
// A política padrão da API é janela fixa de 100 requisições a cada 10s, global,
// sem fila (veja config: RATE_STRATEGY, RATE_PERMIT_LIMIT, RATE_WINDOW, RATE_PARTITION).
package ratelimit
