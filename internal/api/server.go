package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/fittrack/internal/service"
	"go.uber.org/zap"
)

type Server struct {
	mx               *chi.Mux
	srv              *http.Server
	logger           *zap.Logger
	loc              *time.Location
	now              func() time.Time
	reconcileService service.ReconcileServiceI
	recordsService   service.RecordsServiceI
	statsService     service.StatsServiceI
	samplesService   service.SamplesServiceI
	jwtService       JWTServiceI
}

// ServicesList wires the server. A nil JwtService disables authentication.
type ServicesList struct {
	ReconcileService service.ReconcileServiceI
	RecordsService   service.RecordsServiceI
	StatsService     service.StatsServiceI
	SamplesService   service.SamplesServiceI
	JwtService       JWTServiceI
	Logger           *zap.Logger
	Location         *time.Location
}

func New(servicesOptions *ServicesList) *Server {
	if servicesOptions.ReconcileService == nil || servicesOptions.RecordsService == nil ||
		servicesOptions.StatsService == nil || servicesOptions.SamplesService == nil {
		log.Fatal("api server requires every service")
	}
	s := &Server{
		mx:               chi.NewMux(),
		logger:           servicesOptions.Logger,
		loc:              servicesOptions.Location,
		now:              time.Now,
		reconcileService: servicesOptions.ReconcileService,
		recordsService:   servicesOptions.RecordsService,
		statsService:     servicesOptions.StatsService,
		samplesService:   servicesOptions.SamplesService,
		jwtService:       servicesOptions.JwtService,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		if s.jwtService != nil {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
		}
		r.Get("/days/{date}", s.GetDay)
		r.Put("/days/{date}/metrics", s.UpdateMetrics)
		r.Post("/days/{date}/meals", s.AddMeal)
		r.Post("/days/{date}/sync", s.SyncDay)
		r.Delete("/meals/{id}", s.DeleteMeal)
		r.Post("/sync", s.SyncRange)
		r.Get("/stats", s.GetStats)
		r.Get("/insights", s.GetInsights)
		r.Get("/report", s.GetReport)
		r.Post("/samples", s.IngestSamples)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run blocks until the server stops. http.ErrServerClosed is returned after Shutdown.
func (s *Server) Run(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
		// range syncs and reports can take a while
		WriteTimeout: 2 * time.Minute,
	}
	s.logger.Info("api server started", zap.String("address", addr))
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
