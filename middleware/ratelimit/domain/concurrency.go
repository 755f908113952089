package domain

import "context"

// SlotPool limita quantos cálculos rodam ao mesmo tempo.
//
// Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar.
// Ao adquirir, retorna uma função de release que deve ser chamada exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}

// SlotUsage expõe a ocupação do pool (usado pelo /health).
type SlotUsage interface {
	InUse() int
	Cap() int
}
