package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	api "github.com/kumitate-app/kumitate/internal/api/http"
	"github.com/kumitate-app/kumitate/internal/auth"
	authmw "github.com/kumitate-app/kumitate/internal/auth/middleware"
	"github.com/kumitate-app/kumitate/internal/config"
	"github.com/kumitate-app/kumitate/internal/corpus"
	"github.com/kumitate-app/kumitate/internal/db"
	"github.com/kumitate-app/kumitate/internal/exercise"
	"github.com/kumitate-app/kumitate/internal/tokenizer"
	"github.com/kumitate-app/kumitate/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := corpus.NewSQLStore(dbh)

	// --- Tokenizer (dictionary load is the slow part; do it once at boot) ---
	tok, err := tokenizer.NewKagome()
	if err != nil {
		log.Fatalf("tokenizer init failed: %v", err)
	}

	svc := exercise.NewService(store, store, tok)
	svc.Builder.Budget = cfg.NumDistractors
	svc.Builder.MaxTokens = cfg.MaxSentTokens

	// --- Auth ---
	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := authmw.NewAuthService(secret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", web.IndexHandler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	if cfg.EnableGuestAuth {
		r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, dbh, cfg))
	}
	if cfg.AdminPassHash != "" {
		r.Post("/auth/login", authmw.AdminLoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))
	}

	// Learner surface (JWT, any role)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))
		pr.Get("/exercise", api.GetExerciseHandler(svc))
		pr.Get("/exercise/{exerciseID}", api.GetExerciseByIDHandler(svc))
		pr.Post("/grade", api.GradeHandler(svc))
	})

	// Admin surface
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))
		pr.Use(authmw.RequireRole("admin"))
		pr.Get("/admin/stats", api.StatsHandler(store, store))
	})

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
