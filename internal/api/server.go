// Package api exposes the translator as a JSON HTTP service.
//
// Endpoints:
//
//	GET  /healthz
//	POST /api/translate          body: {"text":"...","intensity":5}
//	POST /api/translate/words    same body, per-word detail
//	GET  /api/syllables?word=<word>
//	GET  /api/intensity?value=<n>
//	POST /api/feedback
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/vocal-technique/vocaltrans"
	"github.com/vocal-technique/vocaltrans/internal/feedback"
	"github.com/vocal-technique/vocaltrans/internal/observability"
)

const (
	defaultMaxBodyBytes = 64 << 10
	defaultMaxTextBytes = 32 << 10
	defaultIntensity    = 5
)

// Deps wires the router's collaborators and limits. Zero limits take
// defaults; a nil Feedback disables the feedback endpoint.
type Deps struct {
	Translator *vocaltrans.Translator
	Feedback   *feedback.Service
	Logger     *zap.Logger

	// Defaults apply when a request leaves a field out.
	Defaults         vocaltrans.Options
	DefaultIntensity float64

	RequestTimeout time.Duration
	AllowedOrigins []string
	MaxBodyBytes   int64
	MaxTextBytes   int
}

type server struct {
	tr        *vocaltrans.Translator
	feedback  *feedback.Service
	defaults  vocaltrans.Options
	intensity float64
	maxBody   int64
	maxText   int
}

// NewRouter builds the HTTP handler.
func NewRouter(deps Deps) http.Handler {
	s := &server{
		tr:        deps.Translator,
		feedback:  deps.Feedback,
		defaults:  deps.Defaults,
		intensity: deps.DefaultIntensity,
		maxBody:   deps.MaxBodyBytes,
		maxText:   deps.MaxTextBytes,
	}
	if s.tr == nil {
		s.tr = vocaltrans.Default()
	}
	if s.intensity == 0 {
		s.intensity = defaultIntensity
	}
	if s.maxBody <= 0 {
		s.maxBody = defaultMaxBodyBytes
	}
	if s.maxText <= 0 {
		s.maxText = defaultMaxTextBytes
	}

	r := chi.NewRouter()
	r.Use(observability.RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(observability.InjectLoggerMiddleware(deps.Logger))
	r.Use(observability.RequestLoggerMiddleware)
	r.Use(observability.RecoveryMiddleware)
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}
	r.Use(newCORS(deps.AllowedOrigins).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed")
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/translate", s.handleTranslate)
		r.Post("/translate/words", s.handleTranslateWords)
		r.Get("/syllables", s.handleSyllables)
		r.Get("/intensity", s.handleIntensity)
		r.Post("/feedback", s.handleFeedback)
	})
	return r
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", observability.RequestIDHeader},
		ExposedHeaders: []string{observability.RequestIDHeader},
		MaxAge:         600,
	})
}
