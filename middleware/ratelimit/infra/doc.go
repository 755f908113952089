// Package infra contém implementações concretas para os contratos do pacote domain.
//
//   - Store: limiter por chave; token bucket (golang.org/x/time/rate) ou janela fixa
//   - FixedWindow: N permissões por janela, sem fila
//   - ChanPool: semáforo para limitar cálculos simultâneos
//   - MemoryStatsStore / RedisStatsStore: contadores de allow/deny
package infra
