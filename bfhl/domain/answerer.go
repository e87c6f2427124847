package domain

import "context"

// Answerer responde uma pergunta com uma única palavra.
//
// Implementações fazem no máximo uma chamada externa, sem retry, e devem
// respeitar o ctx. Falhas de transporte ou credencial ausente devem ser
// marcadas com ErrUpstreamUnavailable.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}
