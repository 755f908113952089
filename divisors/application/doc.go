// Package application contém o caso de uso do serviço de divisores.
//
// Depende de domain e numbertools e não conhece net/http.
// Ex.: Service.Compute(ctx, n) calcula (ou busca no cache) e mede o tempo gasto.
package application
