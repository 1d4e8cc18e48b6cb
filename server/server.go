// Package server exposes a small diagnostics HTTP API over the meter
// registry: meter listing, connection status, on-demand short reads, and an
// SSE stream replaying driver events as they happen. It is not required for
// programmatic use of the meter package — library callers use meter.Session
// directly — but gives operators a way to watch a run.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/edas-mass/iec62056-driver/internal/events"
	"github.com/edas-mass/iec62056-driver/logs"
	"github.com/edas-mass/iec62056-driver/meter"
	"github.com/edas-mass/iec62056-driver/registry"
)

type Server struct {
	port       int
	version    string
	registry   *registry.Registry
	cache      *registry.IdentityCache
	hub        *events.Hub
	router     *mux.Router
	httpServer *http.Server

	sessions *sessionPool
}

func New(port int, reg *registry.Registry, cache *registry.IdentityCache, hub *events.Hub, frameLog *logs.Writer, version string) *Server {
	s := &Server{
		port:     port,
		version:  version,
		registry: reg,
		cache:    cache,
		hub:      hub,
		router:   mux.NewRouter(),
		sessions: newSessionPool(hub, frameLog),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/version", s.handleVersion).Methods("GET")
	api.HandleFunc("/meters", s.handleListMeters).Methods("GET")
	api.HandleFunc("/meters/{name}/status", s.handleMeterStatus).Methods("GET")
	api.HandleFunc("/meters/{name}/identity", s.handleMeterIdentity).Methods("GET")
	api.HandleFunc("/meters/{name}/read", s.handleMeterRead).Methods("POST")
	api.HandleFunc("/events", s.handleEvents).Methods("GET")
	log.Info("Registered route: /api/events")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Infof("MIDDLEWARE: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Run(ctx context.Context) error {
	s.router.Use(loggingMiddleware)
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		log.Info("Context done, shutting down HTTP server")
		s.httpServer.Shutdown(context.Background())
	}()

	log.Infof("Starting diagnostics server on port %d", s.port)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		log.Info("HTTP server closed cleanly")
		return nil
	}
	log.Errorf("HTTP server error: %v", err)
	return err
}

// sessionPool lazily creates one *meter.Session per meter name, sharing the
// same Hub-backed sink so every meter's activity reaches the single SSE
// stream.
type sessionPool struct {
	mu       sync.Mutex
	hub      *events.Hub
	frameLog *logs.Writer
	sessions map[string]*meter.Session
}

func newSessionPool(hub *events.Hub, frameLog *logs.Writer) *sessionPool {
	return &sessionPool{hub: hub, frameLog: frameLog, sessions: make(map[string]*meter.Session)}
}

func (p *sessionPool) get(name string) *meter.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.sessions[name]; ok {
		return s
	}
	sink := events.Multi{
		events.LogrusSink{},
		p.hub,
		events.FileSink{Archiver: p.frameLog, MeterName: name},
	}
	s := meter.New(sink)
	p.sessions[name] = s
	return s
}
