package http

import (
	"io"
	"log/slog"

	"github.com/fieldops-id/fieldops-backend-go/internal/config"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/middleware"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Auth        AuthHandler
	Attendance  AttendanceHandler
	OutletVisit OutletVisitHandler
	Master      MasterHandler
	Order       OrderHandler
	Event       EventHandler
}

// NewLogger builds the ECS-formatted JSON logger shared by the request log and the rest of the process.
func NewLogger(out io.Writer, app config.AppConfig, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fieldops-backend"),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)
}

func NewRouter(jwtService jwt.Service, logger *slog.Logger, level slog.Level, httpCfg config.HTTPConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   httpCfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  level,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	authLimiter := middleware.NewRateLimiter(httpCfg.RateLimit.AuthRPS, httpCfg.RateLimit.AuthBurst, middleware.ByIP)
	userLimiter := middleware.NewRateLimiter(httpCfg.RateLimit.UserRPS, httpCfg.RateLimit.UserBurst, middleware.ByUser)
	authRequired := func(r chi.Router) {
		r.Use(middleware.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Handler)

			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				if h.Auth.GoogleEnabled() {
					r.Get("/oauth/google", h.Auth.LoginWithGoogle)
				}
			})
			if h.Auth.GoogleEnabled() {
				r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			}

			r.Group(func(r chi.Router) {
				authRequired(r)
				r.Post("/sse-token", h.Auth.SSEToken)
			})
		})

		// authenticated by the short-lived token in the query string
		r.Get("/events", h.Event.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			authRequired(r)

			r.Get("/users/me", h.Auth.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.With(userLimiter.Handler).Post("/punchin", h.Attendance.PunchIn)
				r.With(userLimiter.Handler).Post("/punchout", h.Attendance.PunchOut)
				r.Get("/status", h.Attendance.Status)
				r.Get("/history", h.Attendance.History)
			})

			r.Route("/outletvisit", func(r chi.Router) {
				r.With(userLimiter.Handler).Post("/checkin", h.OutletVisit.CheckIn)
				r.With(userLimiter.Handler).Post("/checkout", h.OutletVisit.CheckOut)
				r.Get("/status", h.OutletVisit.Status)
				r.Get("/history", h.OutletVisit.History)
			})

			r.Route("/orders", func(r chi.Router) {
				r.With(userLimiter.Handler).Post("/", h.Order.Create)
				r.Get("/", h.Order.List)
				r.Get("/{id}", h.Order.Get)
				r.With(userLimiter.Handler).Patch("/{id}/ship", h.Order.Ship)
			})

			h.Master.Mount(r)
		})
	})
	return r
}
