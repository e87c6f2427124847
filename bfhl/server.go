package bfhl

import (
	"net/http"
	"time"

	"bfhl-service/bfhl/application"
	"bfhl-service/bfhl/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Options struct {
	// Identity é o e-mail oficial devolvido nas respostas de sucesso.
	// Vazio faz /health e /bfhl responderem 500.
	Identity string
	Service  application.Service
	// Stats é opcional; falhas são best-effort.
	Stats domain.StatsStore
	// Metrics nil desliga /metrics e a contagem Prometheus.
	Metrics      *Metrics
	Log          *zap.SugaredLogger
	MaxBodyBytes int64
	Concurrency  ConcurrencyOptions
}

type handler struct {
	identity string
	svc      application.Service
	stats    domain.StatsStore
	metrics  *Metrics
	log      *zap.SugaredLogger

	// erros de stats são logados no máximo uma vez por minuto
	statsErrLog *rate.Sometimes
}

// NewRouter monta as rotas e middlewares. O handler devolvido é seguro para
// uso concorrente e não guarda estado entre requisições além de métricas/stats.
func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.With("module", "bfhl.http")

	if opts.Service.Log == nil {
		opts.Service.Log = log.With("module", "bfhl.application")
	}

	h := &handler{
		identity:    opts.Identity,
		svc:         opts.Service,
		stats:       opts.Stats,
		metrics:     opts.Metrics,
		log:         log,
		statsErrLog: &rate.Sometimes{First: 1, Interval: time.Minute},
	}

	slotPool := newSlotPool(opts.Concurrency)
	if slotPool != nil {
		opts.Metrics.TrackSlots(slotPool)
	}

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(recoverer(log))
	r.Use(requestID)
	r.Use(accessLog(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	}))
	r.Use(bodyLimit(opts.MaxBodyBytes))

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.notFound)

	r.Get("/health", h.health)
	r.Head("/health", h.health)
	r.With(limitSlots(slotPool, opts.Concurrency.AcquireTimeout)).Post("/bfhl", h.bfhl)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	return r
}
