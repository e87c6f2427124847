package domain

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Operation é o discriminante da requisição POST /bfhl.
type Operation string

const (
	OpFibonacci Operation = "fibonacci"
	OpPrime     Operation = "prime"
	OpLCM       Operation = "lcm"
	OpHCF       Operation = "hcf"
	OpAI        Operation = "AI"
)

// Operations lista o conjunto fechado de operações, na ordem de documentação.
var Operations = []Operation{OpFibonacci, OpPrime, OpLCM, OpHCF, OpAI}

// ParseOperation aceita apenas as chaves exatas (case-sensitive).
func ParseOperation(key string) (Operation, bool) {
	switch op := Operation(key); op {
	case OpFibonacci, OpPrime, OpLCM, OpHCF, OpAI:
		return op, true
	}
	return "", false
}

func (o Operation) String() string { return string(o) }

// Request é a variante selecionada do corpo. Value ainda não foi validado:
// o formato e os limites dependem de Op e são checados na camada application.
type Request struct {
	Op    Operation
	Value json.RawMessage
}

// DecodeRequest seleciona a variante a partir do objeto JSON do corpo.
// Zero chaves, mais de uma chave ou uma chave fora do conjunto fechado
// resultam em erro marcado como ErrBadRequest.
func DecodeRequest(body map[string]json.RawMessage) (Request, error) {
	if len(body) != 1 {
		return Request{}, errors.WithDetailf(ErrKeyCount, "got %d keys", len(body))
	}

	for key, value := range body {
		op, ok := ParseOperation(key)
		if !ok {
			return Request{}, errors.WithDetailf(ErrUnknownOperation, "key %q", key)
		}
		return Request{Op: op, Value: value}, nil
	}

	// inalcançável: len(body) == 1
	return Request{}, ErrKeyCount
}
