package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/enfes/config"
	"github.com/ray-remotestate/enfes/handlers"
	"github.com/ray-remotestate/enfes/metrics"
	"github.com/ray-remotestate/enfes/middlewares"
	"github.com/ray-remotestate/enfes/models"
)

type Server struct {
	Router      *mux.Router
	server      *http.Server
	stopCleanup context.CancelFunc
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute

	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

func SetupRoutes(cfg *config.Config) *Server {
	router := mux.NewRouter()
	router.Use(metrics.InstrumentHandler, middlewares.LoggingMiddleware, middlewares.SessionMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	for _, page := range handlers.Pages {
		router.HandleFunc(page.Path, handlers.ServePage(page)).Methods("GET")
	}

	limiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	limiter.StartCleanup(cleanupCtx, limiterCleanupInterval, limiterMaxIdle)
	router.Handle("/join", limiter.Handler(http.HandlerFunc(handlers.Register))).Methods("POST")
	router.Handle("/login", limiter.Handler(http.HandlerFunc(handlers.Login))).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	router.HandleFunc("/logout", handlers.Logout).Methods("POST")

	actions := router.NewRoute().Subrouter()
	actions.Use(middlewares.RequireSession)
	actions.HandleFunc("/addresses", handlers.AddAddress).Methods("POST")
	actions.HandleFunc("/subscriptions/{subscriptionId}/subscribe", handlers.Subscribe).Methods("POST")
	actions.HandleFunc("/orders/{subscriptionId}/checkout", handlers.Checkout).Methods("POST")
	actions.HandleFunc("/cook/onboard", handlers.BecomeCook).Methods("POST")

	// cook only
	cook := router.PathPrefix("/cook/me").Subrouter()
	cook.Use(middlewares.RoleBasedMiddleware(models.RoleCook))
	cook.HandleFunc("/meals", handlers.CreateMeal).Methods("POST")
	cook.HandleFunc("/subscriptions", handlers.CreateSubscription).Methods("POST")

	return &Server{
		Router:      router,
		stopCleanup: stopCleanup,
		server: &http.Server{
			Addr:              cfg.ServerAddr,
			Handler:           router,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
		},
	}
}

func (svr *Server) Run() error {
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	svr.stopCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
