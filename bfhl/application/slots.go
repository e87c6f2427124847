package application

import (
	"context"
	"time"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
)

// Slots concentra a regra de aquisição de vagas com timeout, sem saber nada sobre HTTP.
type Slots struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire tenta adquirir uma vaga.
//   - Pool nil: sempre libera (limite desligado).
//   - AcquireTimeout <= 0: espera até o ctx da requisição encerrar.
//   - AcquireTimeout > 0: espera no máximo esse tempo.
//
// Em caso de falha devolve domain.ErrNoSlot e nenhuma vaga fica presa.
func (s Slots) Acquire(ctx context.Context) (func(), error) {
	if s.Pool == nil {
		return func() {}, nil
	}

	if s.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.AcquireTimeout)
		defer cancel()
	}

	release, ok := s.Pool.Acquire(ctx)
	if !ok {
		if cause := ctx.Err(); cause != nil {
			return nil, errors.WithSecondaryError(domain.ErrNoSlot, cause)
		}
		return nil, domain.ErrNoSlot
	}
	return release, nil
}
