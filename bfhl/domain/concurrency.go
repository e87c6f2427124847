package domain

import "context"

// SlotPool representa uma capacidade finita de requisições simultâneas.
//
// Acquire bloqueia até obter uma vaga ou até o ctx encerrar. Ao adquirir,
// devolve um release que deve ser chamado exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
