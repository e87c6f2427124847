package domain

import (
	"context"
	"time"
)

// Outcome resume o resultado de uma requisição para fins de estatística.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeBadRequest  Outcome = "bad_request"
	OutcomeServerFault Outcome = "server_fault"
)

// StatsEvent é um evento de despacho. Nunca carrega o payload da requisição,
// só o discriminante e o resultado.
//
// Operation fica vazio quando a requisição falhou antes de selecionar a variante
// (ex.: corpo com duas chaves).
type StatsEvent struct {
	Operation Operation
	Outcome   Outcome

	Method string
	Path   string

	At time.Time
}

// StatsStore é a estratégia de persistência das estatísticas.
//
// O handler trata erro como best-effort (não derruba a requisição).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
