package bfhl

import (
	"encoding/json"
	"net/http"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
)

// keyCountMessage é o único detalhe de validação devolvido ao cliente;
// os demais erros 400 saem sem "error" para não expor a causa.
const keyCountMessage = "Request must contain exactly one key"

// StatusFor traduz a taxonomia do domínio para status HTTP.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case domain.IsBadRequest(err):
		return http.StatusBadRequest
	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// OutcomeFor resume o erro para métricas/estatísticas.
func OutcomeFor(err error) domain.Outcome {
	switch StatusFor(err) {
	case http.StatusOK:
		return domain.OutcomeOK
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return domain.OutcomeBadRequest
	default:
		return domain.OutcomeServerFault
	}
}

func failureFor(err error) domain.Envelope {
	if errors.Is(err, domain.ErrKeyCount) {
		return domain.Failure(keyCountMessage)
	}
	return domain.Failure("")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), failureFor(err))
}
