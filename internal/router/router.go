package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "place-history/internal/adapters/storage/memory"
	pg "place-history/internal/adapters/storage/postgres"
	"place-history/internal/domain/categories"
	"place-history/internal/domain/clients"
	"place-history/internal/domain/locations"
	"place-history/internal/domain/weather"
	"place-history/internal/middleware"
	"place-history/internal/platform/logger"

	_ "place-history/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Fuente de clima; nil significa "sin clima" (weather: null).
	WeatherProvider weather.Provider

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Client-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		clientsRepo    clients.Repository
		categoriesRepo categories.Repository
		visitedRepo    locations.VisitedRepository
		favedRepo      locations.FavedRepository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		clientsRepo = pg.NewClientsRepo(db)
		categoriesRepo = pg.NewCategoriesRepo(db)
		visitedRepo = pg.NewVisitedRepo(db)
		favedRepo = pg.NewFavedRepo(db)
	} else {
		clientsRepo = mem.NewClientsRepo()
		categoriesRepo = mem.NewCategoriesRepo()
		visitedRepo = mem.NewVisitedRepo()
		favedRepo = mem.NewFavedRepo()
	}

	// Services por módulo
	clientsSvc := clients.NewService(clientsRepo)
	categoriesSvc := categories.NewService(categoriesRepo, clientsSvc)
	locationsSvc := locations.NewService(visitedRepo, favedRepo, clientsSvc, categoriesSvc)
	weatherSvc := weather.NewService(opts.WeatherProvider)

	// Rutas por módulo
	clients.RegisterRoutes(r, clientsSvc)
	categories.RegisterRoutes(r, categoriesSvc)
	locations.RegisterRoutes(r, locationsSvc, weatherSvc)

	return r
}
