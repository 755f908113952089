// Package domain define o resultado do cálculo de divisores e o contrato de cache.
//
// Não depende de net/http nem de implementações concretas (memória, Redis).
package domain
