package infra

import (
	"context"
	"sync"

	"bfhl-service/bfhl/domain"
)

// Counters agrega resultados por categoria.
type Counters struct {
	OK          int64
	BadRequest  int64
	ServerFault int64
}

func (c *Counters) add(o domain.Outcome) {
	switch o {
	case domain.OutcomeOK:
		c.OK++
	case domain.OutcomeBadRequest:
		c.BadRequest++
	default:
		c.ServerFault++
	}
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento (STATS_BACKEND=memory).
//
// Não faz expiração; a cardinalidade é limitada ao conjunto fechado de operações.
type MemoryStatsStore struct {
	mu    sync.Mutex
	total Counters
	byOp  map[domain.Operation]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		byOp: make(map[domain.Operation]Counters, len(domain.Operations)),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Outcome)
	if ev.Operation != "" {
		c := s.byOp[ev.Operation]
		c.add(ev.Outcome)
		s.byOp[ev.Operation] = c
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByOperation() map[domain.Operation]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Operation]Counters, len(s.byOp))
	for k, v := range s.byOp {
		out[k] = v
	}
	return out
}

var _ domain.StatsStore = (*MemoryStatsStore)(nil)
