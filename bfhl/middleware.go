package bfhl

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMaxBodyBytes = 10 << 10
	RequestIDHeader     = "X-Request-Id"
	maxRequestIDLen     = 64
)

var errBodyTooLarge = errors.New("request body too large")

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDFrom devolve o id da requisição corrente ("" fora de um handler).
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID reaproveita X-Request-Id do cliente quando razoável; senão gera um uuid.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func accessLog(log *zap.SugaredLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Infow("request",
				"request_id", RequestIDFrom(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
			)
		})
	}
}

// recoverer converte panic em 500 com envelope; o stack vai só para o log.
func recoverer(log *zap.SugaredLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Desugar().Error("panic in handler",
					zap.String("request_id", RequestIDFrom(r.Context())),
					zap.String("panic", fmt.Sprint(rec)),
					zap.Stack("stack"),
				)
				writeJSON(w, http.StatusInternalServerError, domain.Failure(""))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// bodyLimit aplica o teto de corpo. Content-Length acima do teto é recusado
// de imediato; corpos chunked são cortados pelo MaxBytesReader na leitura.
func bodyLimit(max int64) func(next http.Handler) http.Handler {
	if max <= 0 {
		max = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > max {
				writeError(w, errBodyTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, max)
			next.ServeHTTP(w, r)
		})
	}
}
