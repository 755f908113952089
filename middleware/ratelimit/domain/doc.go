// Package domain define contratos e tipos de domínio para rate limit e concorrência
// da API de divisores.
//
// Este pacote não depende de net/http nem de implementações concretas.
package domain
