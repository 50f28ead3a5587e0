package api

import (
	"net/http"
	"time"

	"companion-backend/internal/config"
	"companion-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ChatHandler        *handlers.ChatHandlers
	PreferencesHandler *handlers.PreferencesHandler
	UserResolver       UserResolver
	Config             *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Authenticated Routes (Bearer token resolved to a user) ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(SessionMiddleware(deps.Config.JWTSecret, deps.UserResolver))

		if deps.ChatHandler == nil {
			panic("ChatHandler dependency is nil in router setup")
		}
		r.Route("/chat", func(r chi.Router) {
			r.Post("/", deps.ChatHandler.HandleSendMessage)
			r.Get("/history", deps.ChatHandler.HandleGetHistory)
			r.Delete("/history", deps.ChatHandler.HandleClearHistory)
			r.Get("/summary", deps.ChatHandler.HandleGetSummary)
		})

		if deps.PreferencesHandler == nil {
			panic("PreferencesHandler dependency is nil in router setup")
		}
		r.Route("/me/preferences", func(r chi.Router) {
			r.Get("/", deps.PreferencesHandler.HandleGetPreferences)
			r.Put("/", deps.PreferencesHandler.HandleUpdatePreferences)
		})
	})

	return r
}
