// Package numbertools calcula divisores e divisores primos de inteiros positivos.
//
// São funções puras, sem estado e sem I/O: podem ser chamadas de várias goroutines
// ao mesmo tempo. Cache, limite de taxa e apresentação ficam nos consumidores
// (divisors/application, divisors/httpapi, console).
//
// O único erro é ErrInvalidInput (n < 1). IsPrime nunca falha.
package numbertools
