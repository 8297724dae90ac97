// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/canvas-console/internal/middleware"
)

// Router wires the handlers, the console, and the middleware stack.
type Router struct {
	handler *Handler
	console http.Handler
	cors    CORSConfig
}

// NewRouter creates a Router. console serves every path the API does not
// claim; it may be nil.
func NewRouter(handler *Handler, console http.Handler, cors CORSConfig) *Router {
	return &Router{handler: handler, console: console, cors: cors}
}

// SetupChi builds the chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(CORS(router.cors))
	r.Use(chimiddleware.Compress(5, "application/json", "text/html", "text/css"))

	// Pass-through endpoints used by the browser UI
	r.Route("/api/canvas", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/any", router.handler.CanvasAny)
		r.Get("/profile", router.handler.CanvasProfile)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)

		r.Get("/self", router.handler.Self)
		r.Get("/profile", router.handler.Profile)
		r.Get("/accounts", router.handler.Accounts)

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", router.handler.ListCourses)
			r.Post("/", router.handler.CreateCourse)
			r.Delete("/", router.handler.DeleteAllCourses)
			r.Get("/{id}", router.handler.GetCourse)
			r.Delete("/{id}", router.handler.DeleteCourse)
		})

		r.Route("/harness", func(r chi.Router) {
			r.Post("/reset", router.handler.HarnessReset)
			r.Post("/seed", router.handler.HarnessSeed)
			r.Post("/experiments", router.handler.HarnessExperiments)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).NotFound("No such endpoint")
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	if router.console != nil {
		r.Mount("/", router.console)
	}
	return r
}
