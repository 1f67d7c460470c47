package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/police-records-api/api"
	"github.com/linesmerrill/police-records-api/api/scheduler"
	"github.com/linesmerrill/police-records-api/config"
	"github.com/linesmerrill/police-records-api/databases"
	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

// IndexEnsureSpec is the schedule of the record index upkeep job
const IndexEnsureSpec = "@daily"

const connectTimeout = 10 * time.Second

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Events    *EventHub
	Dashboard *DashboardCache

	dbHelper  databases.DatabaseHelper
	client    databases.ClientHelper
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Events == nil {
		a.Events = NewEventHub()
	}
	if a.Dashboard == nil {
		a.Dashboard = NewDashboardCache(databases.NewDashboardDatabase(databases.NewRecordDatabase(a.dbHelper)))
	}

	tokens := api.NewTokens(a.Config.JWTSecret)

	registrar := registration.NewRegistrar(databases.NewRegistrationStore(a.client, a.dbHelper), a.Events.ArrestRegistered)
	if a.Config.TxTimeout > 0 {
		registrar.Timeout = a.Config.TxTimeout
	}
	if a.Config.TxMaxAttempts > 0 {
		registrar.MaxAttempts = a.Config.TxMaxAttempts
	}

	arrest := Arrest{Registrar: registrar}
	record := Record{DB: databases.NewRecordDatabase(a.dbHelper)}
	dashboard := Dashboard{Cache: a.Dashboard}
	auth := Auth{DB: databases.NewUserDatabase(a.dbHelper), Tokens: tokens}

	r := mux.NewRouter()
	r.Use(api.RequestIDMiddleware, api.MetricsMiddleware)

	// healthchex
	r.HandleFunc("/health", a.healthCheckHandler).Methods("GET")
	r.Handle("/metrics", api.MetricsHandler()).Methods("GET")
	r.Handle("/ws/events", tokens.Middleware(http.HandlerFunc(a.Events.EventsHandler))).Methods("GET")

	apiRoutes := r.PathPrefix("/api").Subrouter()
	if a.Config.RequestTimeout > 0 {
		apiRoutes.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	apiRoutes.Handle("/auth/register", http.HandlerFunc(auth.RegisterHandler)).Methods("POST")
	apiRoutes.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")

	apiRoutes.Handle("/arrest/register", tokens.Middleware(http.HandlerFunc(arrest.RegisterArrestHandler))).Methods("POST")

	apiRoutes.Handle("/collections", tokens.Middleware(http.HandlerFunc(record.CollectionsHandler))).Methods("GET")
	apiRoutes.Handle("/schema/{collection}", tokens.Middleware(http.HandlerFunc(record.SchemaHandler))).Methods("GET")
	apiRoutes.Handle("/records/{collection}", tokens.Middleware(http.HandlerFunc(record.ListRecordsHandler))).Methods("GET")
	apiRoutes.Handle("/records/{collection}", tokens.Middleware(http.HandlerFunc(record.CreateRecordHandler))).Methods("POST")
	apiRoutes.Handle("/records/{collection}/{id}", tokens.Middleware(http.HandlerFunc(record.RecordByIDHandler))).Methods("GET")
	apiRoutes.Handle("/records/{collection}/{id}", tokens.Middleware(http.HandlerFunc(record.UpdateRecordHandler))).Methods("PUT")
	apiRoutes.Handle("/records/{collection}/{id}", tokens.Middleware(http.HandlerFunc(record.DeleteRecordHandler))).Methods("DELETE")

	apiRoutes.Handle("/dashboard/stats", tokens.Middleware(http.HandlerFunc(dashboard.DashboardStatsHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().Errorw("failed to create new client", "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().Errorw("failed to connect to database", "error", err)
		return err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Infow("police-records-api has connected to the database", "database", a.Config.DatabaseName)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// StartScheduler registers the dashboard refresh and index upkeep jobs
func (a *App) StartScheduler() error {
	db := a.dbHelper
	a.scheduler = scheduler.NewScheduler(
		scheduler.Job{Name: "dashboard-refresh", Spec: DashboardRefreshSpec, Run: a.Dashboard.Refresh, RunOnStart: true},
		scheduler.Job{Name: "ensure-indexes", Spec: IndexEnsureSpec, RunOnStart: true, Run: func(ctx context.Context) error {
			return databases.EnsureRecordIndexes(ctx, db)
		}},
	)
	return a.scheduler.Start()
}

// Shutdown stops background work and disconnects from the database
func (a *App) Shutdown(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Events != nil {
		a.Events.Close()
	}
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

func (a *App) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthCheckResponse{Alive: true}
	if a.client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		resp.Database = a.client.Ping(ctx) == nil
	}
	api.WriteJSON(w, http.StatusOK, resp)
}
