package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/recognarr/recognarr/pkg/cache"
	"github.com/recognarr/recognarr/pkg/logger"
	"github.com/recognarr/recognarr/pkg/recognize"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    *string `json:"error,omitempty"`
	Response any     `json:"response"`
}

// Server exposes the recognition pipeline and the cache administration
// surface to operational tooling.
type Server struct {
	baseLogger  *zap.SugaredLogger
	coordinator *recognize.Coordinator
	cache       *cache.ResultCache
}

// New creates a new recognition server
func New(logger *zap.SugaredLogger, coordinator *recognize.Coordinator, resultCache *cache.ResultCache) Server {
	return Server{
		baseLogger:  logger,
		coordinator: coordinator,
		cache:       resultCache,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	msg := err.Error()
	return writeResponse(w, status, GenericResponse{
		Error: &msg,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Handler builds the configured router. Split out of Serve so tests can drive
// it directly.
func (s Server) Handler() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()
	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/recognize", s.Recognize()).Methods(http.MethodPost)
	v1.HandleFunc("/cache/stats", s.CacheStats()).Methods(http.MethodGet)
	v1.HandleFunc("/cache/clear", s.CacheClear()).Methods(http.MethodPost)
	v1.HandleFunc("/cache/clear-ai", s.CacheClearAI()).Methods(http.MethodPost)
	v1.HandleFunc("/cache/reset-stats", s.CacheResetStats()).Methods(http.MethodPost)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

type RecognizeRequest struct {
	Path string `json:"path"`
	Show string `json:"show"`
	AI   bool   `json:"ai"`
}

// Recognize resolves a relative path to a season/episode result
func (s Server) Recognize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var req RecognizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Debugw("failed to decode recognize request", "error", err)
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
			return
		}
		if req.Path == "" {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("path is required"))
			return
		}

		result := s.coordinator.Recognize(r.Context(), req.Path, req.Show, req.AI)
		writeResponse(w, http.StatusOK, GenericResponse{
			Response: result,
		})
	}
}

// CacheStats reports the cache statistics snapshot
func (s Server) CacheStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{
			Response: s.cache.Statistics(),
		})
	}
}

// CacheClear removes every cached result
func (s Server) CacheClear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.cache.Clear()
		writeResponse(w, http.StatusOK, GenericResponse{Response: "cleared"})
	}
}

// CacheClearAI removes only AI- and hybrid-produced entries
func (s Server) CacheClearAI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.cache.ClearAI()
		writeResponse(w, http.StatusOK, GenericResponse{Response: "cleared"})
	}
}

// CacheResetStats zeroes the statistics counters
func (s Server) CacheResetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.cache.ResetStatistics()
		writeResponse(w, http.StatusOK, GenericResponse{Response: "reset"})
	}
}
