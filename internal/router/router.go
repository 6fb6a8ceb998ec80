package router

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"pet-care-tracker/internal/adapters/auth/localtoken"
	mirrorad "pet-care-tracker/internal/adapters/mirror"
	pgmirror "pet-care-tracker/internal/adapters/mirror/postgres"
	restmirror "pet-care-tracker/internal/adapters/mirror/restapi"
	"pet-care-tracker/internal/adapters/storage/kvstore"
	_ "pet-care-tracker/internal/docs"
	"pet-care-tracker/internal/domain/activities"
	"pet-care-tracker/internal/domain/fooditems"
	"pet-care-tracker/internal/domain/healthrecords"
	"pet-care-tracker/internal/domain/meals"
	"pet-care-tracker/internal/domain/medications"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/users"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/platform/web"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/ports/mirror"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// AuthVerifier externo (opcional). Si es nil y DevAuth es false, se usa
	// el verifier de tokens locales.
	AuthVerifier auth.AuthVerifier

	// DevAuth habilita el modo X-Debug-User-ID (sin verifier).
	DevAuth bool

	// DataDir es el directorio de colecciones JSON.
	DataDir string

	// Mirror explícito (opcional). Si es nil se intenta por env:
	// DB_DSN => Postgres, REMOTE_API_URL => backend REST.
	Mirror mirror.Sink

	Logger logger.Logger
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	sink := opts.Mirror
	if sink == nil {
		s, err := sinkFromEnv(log)
		if err != nil {
			return nil, err
		}
		sink = s
	}

	// El store escribe a través del Writer (reintentos + swallow). El syncer
	// usa el sink crudo para poder contar los fallos.
	var storeSink mirror.Sink
	if sink != nil {
		storeSink = mirrorad.NewWriter(sink, log)
	}

	store, err := kvstore.Open(opts.DataDir, kvstore.Options{Mirror: storeSink})
	if err != nil {
		return nil, err
	}

	// Repos sobre el kvstore
	petRepo := kvstore.NewPetsRepo(store)
	taskRepo := kvstore.NewTasksRepo(store)
	mealRepo := kvstore.NewMealsRepo(store)
	foodRepo := kvstore.NewFoodItemsRepo(store)
	medRepo := kvstore.NewMedicationsRepo(store)
	recordRepo := kvstore.NewHealthRecordsRepo(store)
	activityRepo := kvstore.NewActivitiesRepo(store)
	userRepo := kvstore.NewUsersRepo(store)

	tokens := localtoken.NewStore(store)

	verifier := opts.AuthVerifier
	if verifier == nil && !opts.DevAuth {
		verifier = localtoken.NewVerifier(tokens)
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	tasksSvc := tasks.NewService(taskRepo)
	foodSvc := fooditems.NewService(foodRepo)
	mealsSvc := meals.NewService(mealRepo, foodSvc)
	medsSvc := medications.NewService(medRepo)
	recordsSvc := healthrecords.NewService(recordRepo)
	activitiesSvc := activities.NewService(activityRepo)
	usersSvc := users.NewService(userRepo, tokens)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/sync", syncHandler(store, sink, log))

	r.Get("/swagger/*", httpSwagger.Handler())

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	tasks.RegisterRoutes(r, tasksSvc, petsSvc)
	fooditems.RegisterRoutes(r, foodSvc)
	meals.RegisterRoutes(r, mealsSvc, petsSvc)
	medications.RegisterRoutes(r, medsSvc, petsSvc)
	healthrecords.RegisterRoutes(r, recordsSvc, petsSvc)
	activities.RegisterRoutes(r, activitiesSvc, petsSvc)

	return r, nil
}

// sinkFromEnv arma el sink de espejo según configuración:
// - DB_DSN          => Postgres directo (crea el esquema si falta)
// - REMOTE_API_URL  => backend REST hosteado (REMOTE_API_KEY opcional)
// Sin nada configurado el servicio corre local-only.
func sinkFromEnv(log logger.Logger) (mirror.Sink, error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pgmirror.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("router: open mirror db: %w", err)
		}
		sink := pgmirror.NewSink(db)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sink.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		log.Info("mirror enabled", map[string]any{"backend": "postgres"})
		return sink, nil
	}

	if baseURL := os.Getenv("REMOTE_API_URL"); baseURL != "" {
		sink, err := restmirror.New(restmirror.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("REMOTE_API_KEY"),
		})
		if err != nil {
			return nil, fmt.Errorf("router: configure remote mirror: %w", err)
		}
		log.Info("mirror enabled", map[string]any{"backend": "restapi"})
		return sink, nil
	}

	return nil, nil
}

func syncHandler(store *kvstore.Store, sink mirror.Sink, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sink == nil {
			http.Error(w, "no remote mirror configured", http.StatusServiceUnavailable)
			return
		}

		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		syncer := mirrorad.NewSyncer(store, sink, log)
		res, err := syncer.PushAll(r.Context())
		if err != nil {
			http.Error(w, "sync failed", http.StatusInternalServerError)
			return
		}
		web.WriteJSON(w, http.StatusOK, res)
	}
}
