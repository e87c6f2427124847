package bfhl

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
)

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.identity == "" {
		h.log.Errorw("health check failed", "request_id", RequestIDFrom(r.Context()), "error", domain.ErrIdentityUnset)
		writeJSON(w, http.StatusInternalServerError, domain.Failure(""))
		return
	}
	writeJSON(w, http.StatusOK, domain.Envelope{IsSuccess: true, OfficialEmail: h.identity})
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, domain.ErrNotFound)
}

func (h *handler) bfhl(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.identity == "" {
		h.finish(w, r, start, "", nil, domain.ErrIdentityUnset)
		return
	}

	body, err := decodeBody(r.Body)
	if err != nil {
		h.finish(w, r, start, "", nil, err)
		return
	}

	res, err := h.svc.Dispatch(r.Context(), body)
	h.finish(w, r, start, res.Op, res.Data, err)
}

// finish registra métricas/stats e escreve a resposta. Erros que não são de
// validação vão completos para o log; o cliente só recebe o envelope genérico.
func (h *handler) finish(w http.ResponseWriter, r *http.Request, start time.Time, op domain.Operation, data any, err error) {
	outcome := OutcomeFor(err)
	h.metrics.Observe(op, outcome, time.Since(start))
	h.record(r, op, outcome)

	if err != nil {
		if outcome == domain.OutcomeServerFault {
			h.log.Errorw("bfhl request failed",
				"request_id", RequestIDFrom(r.Context()),
				"operation", op,
				"error", err,
				"detail", errors.FlattenDetails(err),
			)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.Success(h.identity, data))
}

func (h *handler) record(r *http.Request, op domain.Operation, outcome domain.Outcome) {
	if h.stats == nil {
		return
	}
	err := h.stats.Record(r.Context(), domain.StatsEvent{
		Operation: op,
		Outcome:   outcome,
		Method:    r.Method,
		Path:      r.URL.Path,
		At:        time.Now(),
	})
	if err != nil {
		h.statsErrLog.Do(func() {
			h.log.Warnw("stats record failed (further errors suppressed for 1m)", "error", err)
		})
	}
}

// decodeBody exige um único objeto JSON. Corpo vazio vale como objeto vazio,
// para cair na regra de "exatamente uma chave".
func decodeBody(rc io.Reader) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(rc)

	var body map[string]json.RawMessage
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, errors.WithSecondaryError(errBodyTooLarge, err)
		case errors.Is(err, io.EOF):
			return map[string]json.RawMessage{}, nil
		default:
			return nil, errors.WithSecondaryError(domain.ErrBadRequest, err)
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.WithSecondaryError(errBodyTooLarge, err)
		}
		return nil, errors.WithDetail(domain.ErrBadRequest, "trailing data after JSON object")
	}
	return body, nil
}
