// Package application contém as regras de rate limit e de limite de concorrência
// usadas na rota de cálculo.
//
// Depende apenas de domain e não conhece net/http.
// Ex.: Service.Decide(key) retorna uma Decision (allow/deny + retry-after).
package application
