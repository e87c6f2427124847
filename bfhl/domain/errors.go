package domain

import "github.com/cockroachdb/errors"

// Erros genéricos por categoria. Cada categoria vira um status HTTP na camada
// de transporte (ver IsBadRequest / IsUnavailable).
var (
	ErrBadRequest  = errors.New("bad request")
	ErrServerFault = errors.New("server fault")
	ErrNotFound    = errors.New("not found")
)

var (
	ErrKeyCount         = errors.New("request must contain exactly one key")
	ErrUnknownOperation = errors.New("unknown operation")

	ErrInvalidShape = errors.New("input must be an array")
	ErrTooShort     = errors.New("array too short")
	ErrTooLong      = errors.New("array too large")
	ErrOutOfRange   = errors.New("value out of range")
	ErrNotInteger   = errors.New("value is not a safe integer")
	ErrNotString    = errors.New("value is not a string")

	ErrIdentityUnset       = errors.New("official identity is not configured")
	ErrUpstreamUnavailable = errors.New("ai upstream unavailable")

	ErrNoSlot = errors.New("no concurrency slot available")
)

var badRequestErrors = []error{
	ErrBadRequest,
	ErrKeyCount,
	ErrUnknownOperation,
	ErrInvalidShape,
	ErrTooShort,
	ErrTooLong,
	ErrOutOfRange,
	ErrNotInteger,
	ErrNotString,
}

// IsBadRequest indica falha de validação da entrada do cliente (HTTP 400).
func IsBadRequest(err error) bool {
	return err != nil && errors.IsAny(err, badRequestErrors...)
}

// IsUnavailable indica falta de capacidade momentânea (HTTP 503).
func IsUnavailable(err error) bool {
	return err != nil && errors.Is(err, ErrNoSlot)
}

// IsNotFound indica rota inexistente (HTTP 404).
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// Qualquer outro erro não nil é tratado como ErrServerFault (HTTP 500).
