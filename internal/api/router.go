package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/divisadero/divisadero/internal/api/handler"
	"github.com/divisadero/divisadero/internal/api/middleware"
	"github.com/divisadero/divisadero/internal/auth"
	"github.com/divisadero/divisadero/internal/brand"
	"github.com/divisadero/divisadero/internal/invite"
	"github.com/divisadero/divisadero/internal/org"
	"github.com/divisadero/divisadero/internal/profile"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AuthService    *auth.Service
	InviteService  *invite.Service
	Orgs           org.Repository
	Profiles       profile.Repository
	Brands         brand.Repository
	DBPinger       handler.DBPinger
	Version        string
	OpenAPISpec    []byte
	AllowedOrigins []string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Get("/", handler.Root)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler, err := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		if err != nil {
			slog.Warn("invalid OpenAPI spec, /openapi.json disabled", "error", err)
		} else {
			r.Get("/openapi.json", openapiHandler.ServeHTTP)
		}
	}

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.AuthService))

		profileHandler := handler.NewProfileHandler(deps.Profiles)
		r.Get("/profiles", profileHandler.List)

		brandHandler := handler.NewBrandHandler(deps.Brands)
		r.Route("/brands", func(r chi.Router) {
			r.Get("/", brandHandler.List)
			r.Get("/{slug}", brandHandler.GetBySlug)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperuser())
				r.Post("/", brandHandler.Create)
				r.Patch("/{slug}", brandHandler.Update)
				r.Delete("/{slug}", brandHandler.Delete)
			})
		})

		orgHandler := handler.NewOrgHandler(deps.Orgs, deps.InviteService)
		r.Route("/org", func(r chi.Router) {
			r.Get("/me", orgHandler.Me)
			r.Post("/{slug}/invite", orgHandler.Invite)
		})

		acceptHandler := handler.NewAcceptHandler(deps.InviteService)
		r.Post("/auth/accept", acceptHandler.ServeHTTP)
	})

	return r
}
