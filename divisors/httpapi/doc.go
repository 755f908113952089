// Package httpapi expõe o serviço de divisores via HTTP (github.com/go-chi/chi/v5).
//
// Traduz erros para status: numbertools.ErrInvalidInput vira 400 com
// {"error": "n deve ser >= 1"}. Rate limit e limite de concorrência são
// injetados como middlewares só na rota de cálculo.
package httpapi
