package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"artgallery/internal/http/handlers"
	"artgallery/internal/infra"
	"artgallery/internal/metrics"
	"artgallery/internal/middleware"
)

// Options carries the cross-cutting settings of the router.
type Options struct {
	Logger        infra.Logger
	CORSOrigins   []string
	CountryLookup middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Country(opts.CountryLookup),
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		metrics.Middleware,
		middleware.CORS(opts.CORSOrigins),
	)

	r.Get("/", app.Hello)
	r.Get("/v1/healthz", app.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", app.Generate)
		r.Route("/stability", func(r chi.Router) {
			r.Get("/", app.Hello)
			r.Post("/", app.Generate)
		})

		for _, path := range []string{"/posts", "/post"} {
			r.Route(path, func(r chi.Router) {
				r.Get("/", app.PostsList)
				r.Post("/", app.PostsCreate)
			})
		}

		r.Get("/prompts/random", app.PromptRandom)
	})

	return r
}
