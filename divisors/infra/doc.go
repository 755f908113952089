// Package infra contém implementações concretas de domain.ResultCache.
//
// Exemplos:
//   - MemoryCache: mapa em memória com expiração deslizante, limite de entradas e janitor
//   - RedisCache: JSON em Redis (github.com/redis/go-redis/v9), TTL renovado com GETEX
package infra
