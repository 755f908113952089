package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"divisors-gateway/divisors/domain"
	ratedomain "divisors-gateway/middleware/ratelimit/domain"
	"divisors-gateway/numbertools"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DivisorsRoute é o padrão registrado para o cálculo.
const DivisorsRoute = "/api/v1/divisors/{n:-?[0-9]+}"

// Computer é o caso de uso consumido pelo handler (application.Service).
type Computer interface {
	Compute(ctx context.Context, n int64) (domain.Result, error)
}

// StatsFunc devolve as estatísticas do rate limit já prontas para JSON.
type StatsFunc func(ctx context.Context) (any, error)

type Options struct {
	Service Computer

	// RateLimit e Concurrency envolvem apenas a rota de cálculo.
	RateLimit   func(http.Handler) http.Handler
	Concurrency func(http.Handler) http.Handler

	// Slots, se presente, aparece no /health.
	Slots ratedomain.SlotUsage
	// Stats, se presente, habilita GET /api/v1/stats.
	Stats StatsFunc

	AccessLog bool
	Now       func() time.Time
}

type api struct {
	svc   Computer
	slots ratedomain.SlotUsage
	stats StatsFunc
	now   func() time.Time
}

// NewRouter monta as rotas da API:
//
//	GET /                           -> redireciona para /docs
//	GET /health                     -> {"status":"ok","utc":...}
//	GET /docs                       -> Swagger UI
//	GET /swagger/v1/swagger.json    -> documento OpenAPI
//	GET /api/v1/divisors/{n}        -> divisores e divisores primos de n
//	GET /api/v1/stats               -> contadores do rate limit (opcional)
func NewRouter(opts Options) http.Handler {
	a := &api{svc: opts.Service, slots: opts.Slots, stats: opts.Stats, now: opts.Now}
	if a.now == nil {
		a.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if opts.AccessLog {
		r.Use(middleware.Logger)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs", http.StatusFound)
	})
	r.Get("/health", a.health)
	r.Get("/docs", serveDocs)
	r.Get("/swagger/v1/swagger.json", serveOpenAPI)

	calc := chi.Chain()
	if opts.RateLimit != nil {
		calc = append(calc, opts.RateLimit)
	}
	if opts.Concurrency != nil {
		calc = append(calc, opts.Concurrency)
	}
	r.With(calc...).Get(DivisorsRoute, a.getDivisors)

	if a.stats != nil {
		r.Get("/api/v1/stats", a.getStats)
	}
	return r
}

// RoutePattern devolve o padrão chi da rota atendida, ou o path se não houver.
// Usado como RouteFn do rate limit para não criar uma chave por n.
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func (a *api) getDivisors(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseInt(chi.URLParam(r, "n"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "n deve ser um inteiro de 64 bits")
		return
	}

	res, err := a.svc.Compute(r.Context(), n)
	if errors.Is(err, numbertools.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, numbertools.ErrInvalidInput.Error())
		return
	}
	if err != nil {
		log.Printf("divisors error n=%d: %v", n, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type slotsBody struct {
	InUse int `json:"inUse"`
	Max   int `json:"max"`
}

type healthBody struct {
	Status      string     `json:"status"`
	UTC         time.Time  `json:"utc"`
	Concurrency *slotsBody `json:"concurrency,omitempty"`
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	body := healthBody{Status: "ok", UTC: a.now().UTC()}
	if a.slots != nil {
		body.Concurrency = &slotsBody{InUse: a.slots.InUse(), Max: a.slots.Cap()}
	}
	writeJSON(w, http.StatusOK, body)
}

func (a *api) getStats(w http.ResponseWriter, r *http.Request) {
	v, err := a.stats(r.Context())
	if err != nil {
		log.Printf("stats error: %v", err)
		writeError(w, http.StatusBadGateway, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write error: %v", err)
	}
}
